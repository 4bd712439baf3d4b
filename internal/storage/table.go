package storage

import (
	"errors"
	"fmt"
	"iter"

	"go.simpledb/internal/logger"
	"go.simpledb/internal/metrics"
)

const DefaultMaxPages = 100

type Table struct {
	pager       *Pager
	rootPageNum uint32

	log     *logger.Logger
	metrics *metrics.Metrics
}

type options struct {
	maxPages int
	log      *logger.Logger
	metrics  *metrics.Metrics
}

type Option func(*options)

func WithMaxPages(n int) Option {
	return func(o *options) { o.maxPages = n }
}

func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Open opens or creates the table stored at path. An empty file gets a fresh
// root leaf on page 0.
func Open(path string, opts ...Option) (*Table, error) {
	o := options{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	if o.metrics == nil {
		o.metrics = metrics.New()
	}

	pager, err := OpenPager(path, o.maxPages, o.log, o.metrics)
	if err != nil {
		return nil, err
	}

	t := &Table{
		pager:       pager,
		rootPageNum: 0,
		log:         o.log,
		metrics:     o.metrics,
	}

	fresh := pager.NumPages() == 0
	root, err := pager.GetPage(t.rootPageNum)
	if err != nil {
		return nil, errors.Join(err, pager.discard())
	}

	if fresh {
		InitLeaf(root)
		t.log.Infof("table: initialised new root leaf in %s", path)
		return t, nil
	}

	leaf := WrapLeafPage(root)
	if leaf.NodeType() != NodeTypeLeaf || leaf.NumCells() > LeafNodeMaxCells {
		corrupt := fmt.Errorf("root page is not a valid leaf: %w", ErrCorruptFile)
		return nil, errors.Join(corrupt, pager.discard())
	}

	t.log.Infof("table: opened %s with %d rows", path, leaf.NumCells())
	return t, nil
}

// Insert stores row under its ID, keeping the leaf ordered by key.
func (t *Table) Insert(row Row) error {
	if err := row.Validate(); err != nil {
		t.metrics.InsertErrors.WithLabelValues("string_too_long").Inc()
		return err
	}

	leaf, err := t.rootLeaf()
	if err != nil {
		return err
	}

	if leaf.IsFull() {
		t.metrics.InsertErrors.WithLabelValues("table_full").Inc()
		t.log.Warnf("table: insert of %d rejected, leaf holds %d cells", row.ID, leaf.NumCells())
		return ErrTableFull
	}

	cursor, err := TableFind(t, row.ID)
	if err != nil {
		return err
	}

	if !cursor.EndOfTable {
		key, err := leaf.Key(cursor.CellNum)
		if err != nil {
			return err
		}
		if key == row.ID {
			t.metrics.InsertErrors.WithLabelValues("duplicate_key").Inc()
			return fmt.Errorf("key %d: %w", row.ID, ErrDuplicateKey)
		}
	}

	if err := leaf.Insert(cursor.CellNum, row.ID, row); err != nil {
		return err
	}

	t.metrics.RowsInserted.Inc()
	t.log.Debugf("table: inserted %d at cell %d", row.ID, cursor.CellNum)
	return nil
}

// Scan yields every row in ascending key order. Iteration stops at the first
// error, which is yielded with a zero Row.
func (t *Table) Scan() iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		cursor, err := TableStart(t)
		if err != nil {
			yield(Row{}, err)
			return
		}

		for !cursor.EndOfTable {
			row, err := cursor.Row()
			if err != nil {
				yield(Row{}, err)
				return
			}
			if !yield(row, nil) {
				return
			}
			if err := cursor.Advance(); err != nil {
				yield(Row{}, err)
				return
			}
		}
	}
}

// NumRows is the number of cells in the root leaf
func (t *Table) NumRows() (uint32, error) {
	leaf, err := t.rootLeaf()
	if err != nil {
		return 0, err
	}
	return leaf.NumCells(), nil
}

// Close flushes the cache to disk. The table must not be used afterwards.
func (t *Table) Close() error {
	if err := t.pager.Close(); err != nil {
		return err
	}
	t.log.Infof("table: closed")
	return nil
}
