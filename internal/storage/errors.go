package storage

import "errors"

var (
	// table
	ErrTableFull    = errors.New("table full")
	ErrDuplicateKey = errors.New("duplicate key")
	// row
	ErrStringTooLong = errors.New("string is too long")
	// pager
	ErrCorruptFile     = errors.New("file is corrupt")
	ErrPageOutOfBounds = errors.New("page number out of bounds")
	ErrFlushUnloaded   = errors.New("tried to flush page that is not loaded")
	ErrClosed          = errors.New("pager is closed")
	// pages
	ErrPageBounds     = errors.New("offset outside page")
	ErrCellOutOfRange = errors.New("cell index out of range")
	// cursor
	ErrCursorExhausted = errors.New("cursor is at end of table")
)

// IsRecoverable reports whether err leaves the table usable. Everything
// else coming out of this package means the file or the cache can no longer
// be trusted and the caller should abort.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrTableFull) ||
		errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrStringTooLong)
}
