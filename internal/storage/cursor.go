package storage

// Cursor is a position in the table. It borrows the table and is only valid
// for the operation that created it.
type Cursor struct {
	table      *Table
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

func (t *Table) rootLeaf() (*LeafPage, error) {
	page, err := t.pager.GetPage(t.rootPageNum)
	if err != nil {
		return nil, err
	}
	return WrapLeafPage(page), nil
}

// TableStart points at the first cell
func TableStart(t *Table) (Cursor, error) {
	leaf, err := t.rootLeaf()
	if err != nil {
		return Cursor{}, err
	}

	return Cursor{
		table:      t,
		PageNum:    t.rootPageNum,
		CellNum:    0,
		EndOfTable: leaf.NumCells() == 0,
	}, nil
}

// TableEnd points one past the last cell. It can be inserted at but never read.
func TableEnd(t *Table) (Cursor, error) {
	leaf, err := t.rootLeaf()
	if err != nil {
		return Cursor{}, err
	}

	return Cursor{
		table:      t,
		PageNum:    t.rootPageNum,
		CellNum:    leaf.NumCells(),
		EndOfTable: true,
	}, nil
}

// TableFind points at key, or at the cell key would have to be inserted
// before.
func TableFind(t *Table, key uint32) (Cursor, error) {
	leaf, err := t.rootLeaf()
	if err != nil {
		return Cursor{}, err
	}

	idx, err := leaf.Find(key)
	if err != nil {
		return Cursor{}, err
	}

	return Cursor{
		table:      t,
		PageNum:    t.rootPageNum,
		CellNum:    idx,
		EndOfTable: idx == leaf.NumCells(),
	}, nil
}

func (c *Cursor) leaf() (*LeafPage, error) {
	page, err := c.table.pager.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	return WrapLeafPage(page), nil
}

func (c *Cursor) Advance() error {
	leaf, err := c.leaf()
	if err != nil {
		return err
	}

	c.CellNum++
	if c.CellNum >= leaf.NumCells() {
		c.EndOfTable = true
	}
	return nil
}

// Value returns the stored row bytes under the cursor
func (c *Cursor) Value() ([]byte, error) {
	if c.EndOfTable {
		return nil, ErrCursorExhausted
	}

	leaf, err := c.leaf()
	if err != nil {
		return nil, err
	}
	return leaf.Value(c.CellNum)
}

func (c *Cursor) Row() (Row, error) {
	val, err := c.Value()
	if err != nil {
		return Row{}, err
	}
	return DeserializeRow(val)
}
