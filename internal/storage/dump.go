package storage

import (
	"fmt"
	"io"
)

func PrintConstants(w io.Writer) {
	fmt.Fprintf(w, "ROW_SIZE: %d\n", RowSize)
	fmt.Fprintf(w, "COMMON_NODE_HEADER_SIZE: %d\n", CommonNodeHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_HEADER_SIZE: %d\n", LeafNodeHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_CELL_SIZE: %d\n", LeafNodeCellSize)
	fmt.Fprintf(w, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", LeafNodeSpaceForCells)
	fmt.Fprintf(w, "LEAF_NODE_MAX_CELLS: %d\n", LeafNodeMaxCells)
}

// PrintTree writes the root leaf and its keys
func (t *Table) PrintTree(w io.Writer) error {
	leaf, err := t.rootLeaf()
	if err != nil {
		return err
	}

	n := leaf.NumCells()
	fmt.Fprintf(w, "leaf (size %d)\n", n)
	for i := uint32(0); i < n; i++ {
		key, err := leaf.Key(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  - %d : %d\n", i, key)
	}
	return nil
}
