package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"go.simpledb/internal/storage"
)

var (
	ErrSyntax                = errors.New("syntax error")
	ErrUnrecognizedStatement = errors.New("unrecognized statement")
	ErrNegativeID            = errors.New("id must be positive")
)

type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

type Statement struct {
	Type StatementType
	Row  storage.Row
}

// Prepare turns one line of input into a Statement. Validation failures are
// reported here so nothing reaches the table.
func Prepare(input string) (Statement, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Statement{}, ErrUnrecognizedStatement
	}

	switch fields[0] {
	case "insert":
		return prepareInsert(fields[1:])
	case "select":
		if len(fields) != 1 {
			return Statement{}, ErrSyntax
		}
		return Statement{Type: StatementSelect}, nil
	}

	return Statement{}, ErrUnrecognizedStatement
}

func prepareInsert(args []string) (Statement, error) {
	if len(args) != 3 {
		return Statement{}, ErrSyntax
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		// out of range but still a number, so the sign decides
		if errors.Is(err, strconv.ErrRange) && strings.HasPrefix(args[0], "-") {
			return Statement{}, ErrNegativeID
		}
		return Statement{}, ErrSyntax
	}
	if id < 0 {
		return Statement{}, ErrNegativeID
	}
	if id > math.MaxUint32 {
		return Statement{}, ErrSyntax
	}

	row := storage.Row{
		ID:       uint32(id),
		Username: args[1],
		Email:    args[2],
	}
	if err := row.Validate(); err != nil {
		return Statement{}, err
	}

	return Statement{Type: StatementInsert, Row: row}, nil
}
