package engine

import (
	"fmt"
	"io"
)

// Execute runs stmt against the open table, writing any result rows to out.
func (db *Database) Execute(stmt Statement, out io.Writer) error {
	switch stmt.Type {
	case StatementInsert:
		return db.table.Insert(stmt.Row)
	case StatementSelect:
		return db.selectAll(out)
	}
	return fmt.Errorf("statement type %d: %w", stmt.Type, ErrUnrecognizedStatement)
}

func (db *Database) selectAll(out io.Writer) error {
	for row, err := range db.table.Scan() {
		if err != nil {
			return err
		}
		fmt.Fprintln(out, row)
	}
	return nil
}
