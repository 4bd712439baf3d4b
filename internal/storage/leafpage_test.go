package storage

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow(id uint32) Row {
	return Row{ID: id, Username: fmt.Sprintf("user%d", id), Email: fmt.Sprintf("person%d@example.com", id)}
}

func leafKeys(t *testing.T, leaf *LeafPage) []uint32 {
	t.Helper()
	keys := []uint32{}
	for i := uint32(0); i < leaf.NumCells(); i++ {
		k, err := leaf.Key(i)
		require.NoError(t, err)
		keys = append(keys, k)
	}
	return keys
}

func TestLeafConstants(t *testing.T) {
	assert.Equal(t, 6, CommonNodeHeaderSize)
	assert.Equal(t, 10, LeafNodeHeaderSize)
	assert.Equal(t, 297, LeafNodeCellSize)
	assert.Equal(t, 4086, LeafNodeSpaceForCells)
	assert.Equal(t, 13, LeafNodeMaxCells)
}

func TestInitLeafHeader(t *testing.T) {
	page := NewPage(0)
	for i := range page.Data {
		page.Data[i] = 0xff
	}

	leaf := InitLeaf(page)

	assert.Equal(t, NodeTypeLeaf, leaf.NodeType())
	assert.True(t, leaf.IsRoot())
	assert.Equal(t, uint32(0), leaf.ParentPointer())
	assert.Equal(t, uint32(0), leaf.NumCells())
	assert.Equal(t, []byte{1, 1, 0, 0, 0, 0, 0, 0, 0, 0}, page.Data[:LeafNodeHeaderSize])
}

func TestLeafHeaderSetters(t *testing.T) {
	leaf := InitLeaf(NewPage(0))

	leaf.SetRoot(false)
	leaf.SetParentPointer(42)
	leaf.SetNumCells(3)

	assert.False(t, leaf.IsRoot())
	assert.Equal(t, uint32(42), binary.LittleEndian.Uint32(leaf.Page.Data[2:6]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(leaf.Page.Data[6:10]))
}

func TestLeafInsertKeepsOrder(t *testing.T) {
	leaf := InitLeaf(NewPage(0))

	for _, id := range []uint32{10, 30, 20, 5, 25} {
		idx, err := leaf.Find(id)
		require.NoError(t, err)
		require.NoError(t, leaf.Insert(idx, id, testRow(id)))
	}

	assert.Equal(t, []uint32{5, 10, 20, 25, 30}, leafKeys(t, leaf))

	for i, id := range []uint32{5, 10, 20, 25, 30} {
		val, err := leaf.Value(uint32(i))
		require.NoError(t, err)
		row, err := DeserializeRow(val)
		require.NoError(t, err)
		assert.Equal(t, testRow(id), row)
	}
}

func TestLeafCellLayout(t *testing.T) {
	leaf := InitLeaf(NewPage(0))
	require.NoError(t, leaf.Insert(0, 9, testRow(9)))

	off := LeafNodeHeaderSize
	assert.Equal(t, uint32(9), binary.LittleEndian.Uint32(leaf.Page.Data[off:off+4]))
	assert.Equal(t, uint32(9), binary.LittleEndian.Uint32(leaf.Page.Data[off+4:off+8]))
}

func TestLeafFind(t *testing.T) {
	leaf := InitLeaf(NewPage(0))
	for i, id := range []uint32{2, 4, 6} {
		require.NoError(t, leaf.Insert(uint32(i), id, testRow(id)))
	}

	cases := map[uint32]uint32{1: 0, 2: 0, 3: 1, 4: 1, 6: 2, 7: 3}
	for key, want := range cases {
		got, err := leaf.Find(key)
		require.NoError(t, err)
		assert.Equal(t, want, got, "key %d", key)
	}
}

func TestLeafInsertFull(t *testing.T) {
	leaf := InitLeaf(NewPage(0))
	for i := uint32(0); i < LeafNodeMaxCells; i++ {
		require.NoError(t, leaf.Insert(i, i, testRow(i)))
	}
	before := append([]byte(nil), leaf.Page.Data...)

	err := leaf.Insert(0, 100, testRow(100))
	assert.ErrorIs(t, err, ErrTableFull)
	assert.Equal(t, uint32(LeafNodeMaxCells), leaf.NumCells())
	assert.Equal(t, before, leaf.Page.Data)
}

func TestLeafBoundsChecks(t *testing.T) {
	leaf := InitLeaf(NewPage(0))

	_, err := leaf.Cell(LeafNodeMaxCells)
	assert.ErrorIs(t, err, ErrCellOutOfRange)

	_, err = leaf.Key(LeafNodeMaxCells)
	assert.ErrorIs(t, err, ErrCellOutOfRange)

	err = leaf.Insert(1, 1, testRow(1))
	assert.ErrorIs(t, err, ErrCellOutOfRange)

	_, err = leaf.Page.slice(PageSize-2, 4)
	assert.ErrorIs(t, err, ErrPageBounds)
}

func TestLeafFindCorruptCount(t *testing.T) {
	leaf := InitLeaf(NewPage(0))
	leaf.SetNumCells(LeafNodeMaxCells + 1)

	_, err := leaf.Find(1)
	assert.ErrorIs(t, err, ErrCorruptFile)
}
