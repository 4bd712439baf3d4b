package engine

import (
	"io"

	"go.simpledb/internal/storage"
)

type Database struct {
	table *storage.Table
	path  string
}

func (db *Database) Path() string {
	return db.path
}

func (db *Database) PrintTree(out io.Writer) error {
	return db.table.PrintTree(out)
}

func (db *Database) Close() error {
	return db.table.Close()
}
