package storage

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Common node header
const (
	nodeTypeOffset       = 0
	isRootOffset         = 1
	parentPointerOffset  = 2
	CommonNodeHeaderSize = 6
)

// Leaf node header and body
const (
	numCellsOffset     = CommonNodeHeaderSize
	LeafNodeHeaderSize = CommonNodeHeaderSize + 4

	leafKeySize      = 4
	leafValueOffset  = leafKeySize
	LeafNodeCellSize = leafKeySize + RowSize

	LeafNodeSpaceForCells = PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize
)

type LeafPage struct {
	Page *Page
}

// InitLeaf formats page as an empty root leaf
func InitLeaf(page *Page) *LeafPage {
	clear(page.Data[:LeafNodeHeaderSize])
	page.Data[nodeTypeOffset] = byte(NodeTypeLeaf)
	page.Data[isRootOffset] = 1

	return &LeafPage{
		Page: page,
	}
}

func WrapLeafPage(page *Page) *LeafPage {
	return &LeafPage{
		Page: page,
	}
}

// GETTERS
func (lp *LeafPage) NodeType() NodeType {
	return NodeType(lp.Page.Data[nodeTypeOffset])
}

func (lp *LeafPage) IsRoot() bool {
	return lp.Page.Data[isRootOffset] != 0
}

func (lp *LeafPage) ParentPointer() uint32 {
	raw := lp.Page.Data[parentPointerOffset : parentPointerOffset+4]
	return binary.LittleEndian.Uint32(raw)
}

func (lp *LeafPage) NumCells() uint32 {
	raw := lp.Page.Data[numCellsOffset : numCellsOffset+4]
	return binary.LittleEndian.Uint32(raw)
}

func (lp *LeafPage) Cell(i uint32) ([]byte, error) {
	if i >= LeafNodeMaxCells {
		return nil, fmt.Errorf("cell %d of %d: %w", i, LeafNodeMaxCells, ErrCellOutOfRange)
	}
	return lp.Page.slice(LeafNodeHeaderSize+int(i)*LeafNodeCellSize, LeafNodeCellSize)
}

func (lp *LeafPage) Key(i uint32) (uint32, error) {
	if i >= LeafNodeMaxCells {
		return 0, fmt.Errorf("cell %d of %d: %w", i, LeafNodeMaxCells, ErrCellOutOfRange)
	}
	return lp.Page.uint32At(LeafNodeHeaderSize + int(i)*LeafNodeCellSize)
}

func (lp *LeafPage) Value(i uint32) ([]byte, error) {
	cell, err := lp.Cell(i)
	if err != nil {
		return nil, err
	}
	return cell[leafValueOffset:], nil
}

// SETTERS
func (lp *LeafPage) SetRoot(root bool) {
	var b byte
	if root {
		b = 1
	}
	lp.Page.Data[isRootOffset] = b
}

func (lp *LeafPage) SetParentPointer(id uint32) {
	binary.LittleEndian.PutUint32(lp.Page.Data[parentPointerOffset:parentPointerOffset+4], id)
}

func (lp *LeafPage) SetNumCells(n uint32) {
	binary.LittleEndian.PutUint32(lp.Page.Data[numCellsOffset:numCellsOffset+4], n)
}

func (lp *LeafPage) IsFull() bool {
	return lp.NumCells() >= LeafNodeMaxCells
}

// Find returns the index holding key, or the index key would be inserted at
// to keep the cells ordered.
func (lp *LeafPage) Find(key uint32) (uint32, error) {
	n := lp.NumCells()
	if n > LeafNodeMaxCells {
		return 0, fmt.Errorf("leaf claims %d cells: %w", n, ErrCorruptFile)
	}

	var findErr error
	idx := sort.Search(int(n), func(i int) bool {
		k, err := lp.Key(uint32(i))
		if err != nil {
			findErr = err
			return true
		}
		return k >= key
	})
	if findErr != nil {
		return 0, findErr
	}
	return uint32(idx), nil
}

// Insert writes key/row at cellNum, moving the cells after it one slot right.
func (lp *LeafPage) Insert(cellNum, key uint32, row Row) error {
	numCells := lp.NumCells()
	if numCells >= LeafNodeMaxCells {
		return ErrTableFull
	}
	if cellNum > numCells {
		return fmt.Errorf("insert at %d with %d cells: %w", cellNum, numCells, ErrCellOutOfRange)
	}
	if err := row.Validate(); err != nil {
		return err
	}

	// Walk from the tail so each copy lands on a slot that is already moved
	for i := numCells; i > cellNum; i-- {
		dst, err := lp.Cell(i)
		if err != nil {
			return err
		}
		src, err := lp.Cell(i - 1)
		if err != nil {
			return err
		}
		copy(dst, src)
	}

	cell, err := lp.Cell(cellNum)
	if err != nil {
		return err
	}
	if err := lp.Page.putUint32At(LeafNodeHeaderSize+int(cellNum)*LeafNodeCellSize, key); err != nil {
		return err
	}
	if err := SerializeRow(row, cell[leafValueOffset:]); err != nil {
		return err
	}

	lp.SetNumCells(numCells + 1)
	return nil
}
