package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.simpledb/internal/logger"
	"go.simpledb/internal/metrics"
)

// Pager brokers pages between the backing file and memory. Pages stay
// resident from first access until Close; there is no eviction.
type Pager struct {
	file       *os.File
	fileLength int64
	numPages   uint32
	pages      []*Page
	closed     bool

	log     *logger.Logger
	metrics *metrics.Metrics
}

func OpenPager(path string, maxPages int, log *logger.Logger, m *metrics.Metrics) (*Pager, error) {
	if maxPages <= 0 {
		return nil, fmt.Errorf("max pages must be positive, got %d", maxPages)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	size := info.Size()
	if size%PageSize != 0 {
		f.Close()
		return nil, fmt.Errorf("%s is %d bytes, not a whole number of pages: %w", path, size, ErrCorruptFile)
	}

	numPages := size / PageSize
	if numPages > int64(maxPages) {
		f.Close()
		return nil, fmt.Errorf("%s holds %d pages, limit is %d: %w", path, numPages, maxPages, ErrCorruptFile)
	}

	log.Debugf("pager: opened %s (%d bytes, %d pages)", path, size, numPages)

	return &Pager{
		file:       f,
		fileLength: size,
		numPages:   uint32(numPages),
		pages:      make([]*Page, maxPages),
		log:        log,
		metrics:    m,
	}, nil
}

func (pager *Pager) checkPageNum(n uint32) error {
	if pager.closed {
		return ErrClosed
	}
	if int(n) >= len(pager.pages) {
		return fmt.Errorf("page %d, limit %d: %w", n, len(pager.pages), ErrPageOutOfBounds)
	}
	return nil
}

// GetPage returns the resident page n, loading it from disk on first access
// when it lies inside the file and zero filling it otherwise.
func (pager *Pager) GetPage(n uint32) (*Page, error) {
	if err := pager.checkPageNum(n); err != nil {
		return nil, err
	}

	if page := pager.pages[n]; page != nil {
		pager.metrics.PageHits.Inc()
		return page, nil
	}

	page := NewPage(n)
	offset := int64(n) * PageSize

	if offset < pager.fileLength {
		if _, err := pager.file.ReadAt(page.Data, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading page %d: %w", n, err)
		}
		pager.metrics.PageLoads.Inc()
		pager.log.Debugf("pager: loaded page %d from disk", n)
	} else {
		pager.metrics.PageAllocs.Inc()
		pager.log.Debugf("pager: allocated page %d", n)
	}

	pager.pages[n] = page
	pager.metrics.ResidentPages.Inc()

	if n >= pager.numPages {
		pager.numPages = n + 1
	}

	return page, nil
}

// Flush writes page n back to its slot in the file
func (pager *Pager) Flush(n uint32) error {
	if err := pager.checkPageNum(n); err != nil {
		return err
	}

	page := pager.pages[n]
	if page == nil {
		return fmt.Errorf("page %d: %w", n, ErrFlushUnloaded)
	}

	offset := int64(n) * PageSize
	written, err := pager.file.WriteAt(page.Data, offset)
	if err != nil {
		return fmt.Errorf("error writing page %d: %w", n, err)
	}
	if written != PageSize {
		return fmt.Errorf("short write on page %d: %d of %d bytes", n, written, PageSize)
	}

	if end := offset + PageSize; end > pager.fileLength {
		pager.fileLength = end
	}

	pager.metrics.PageFlushes.Inc()
	pager.log.Debugf("pager: flushed page %d", n)
	return nil
}

// discard drops the cache and closes the file without writing anything back
func (pager *Pager) discard() error {
	if pager.closed {
		return nil
	}
	for i, page := range pager.pages {
		if page != nil {
			pager.pages[i] = nil
			pager.metrics.ResidentPages.Dec()
		}
	}
	pager.closed = true

	if err := pager.file.Close(); err != nil {
		return fmt.Errorf("error closing db file: %w", err)
	}
	return nil
}

func (pager *Pager) NumPages() uint32 {
	return pager.numPages
}

func (pager *Pager) Resident(n uint32) bool {
	return int(n) < len(pager.pages) && pager.pages[n] != nil
}

// Close flushes every resident page once, drops the cache and closes the
// file. The pager cannot be used afterwards.
func (pager *Pager) Close() error {
	if pager.closed {
		return ErrClosed
	}

	var flushErr error
	for i := uint32(0); i < pager.numPages; i++ {
		if pager.pages[i] == nil {
			continue
		}
		if err := pager.Flush(i); err != nil && flushErr == nil {
			flushErr = err
		}
		pager.pages[i] = nil
		pager.metrics.ResidentPages.Dec()
	}

	syncErr := pager.file.Sync()
	closeErr := pager.file.Close()
	pager.closed = true

	if err := errors.Join(flushErr, syncErr, closeErr); err != nil {
		return fmt.Errorf("error closing db file: %w", err)
	}

	pager.log.Debugf("pager: closed after %d pages", pager.numPages)
	return nil
}
