package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.simpledb/internal/engine"
	"go.simpledb/internal/logger"
	"go.simpledb/internal/storage"
)

type Session struct {
	db     *engine.Database
	out    io.Writer
	log    *logger.Logger
	closed bool
}

func NewSession(db *engine.Database, out io.Writer, log *logger.Logger) *Session {
	return &Session{
		db:  db,
		out: out,
		log: log,
	}
}

// Handle runs one line of input. done is set once the database has been
// closed by .exit; err is only returned for conditions the process should
// not survive.
func (s *Session) Handle(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if strings.HasPrefix(line, ".") {
		return s.metaCommand(line)
	}

	stmt, err := engine.Prepare(line)
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrSyntax):
		fmt.Fprintln(s.out, "Syntax error. Could not parse statement.")
		return false, nil
	case errors.Is(err, engine.ErrNegativeID):
		fmt.Fprintln(s.out, "ID must be positive.")
		return false, nil
	case errors.Is(err, storage.ErrStringTooLong):
		fmt.Fprintln(s.out, "String is too long.")
		return false, nil
	default:
		fmt.Fprintf(s.out, "Unrecognized keyword at start of '%s'.\n", line)
		return false, nil
	}

	err = s.db.Execute(stmt, s.out)
	switch {
	case err == nil:
		fmt.Fprintln(s.out, "Executed.")
	case errors.Is(err, storage.ErrTableFull):
		fmt.Fprintln(s.out, "Error: Table full.")
	case errors.Is(err, storage.ErrDuplicateKey):
		fmt.Fprintln(s.out, "Error: Duplicate key.")
	case storage.IsRecoverable(err):
		fmt.Fprintf(s.out, "Error: %v.\n", err)
	default:
		s.log.Errorf("session: fatal error executing %q: %v", line, err)
		return true, err
	}
	return false, nil
}

// Close releases the database once
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
