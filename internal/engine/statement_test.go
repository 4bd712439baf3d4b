package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.simpledb/internal/storage"
)

func TestPrepareInsert(t *testing.T) {
	stmt, err := Prepare("insert 1 user1 person1@example.com")
	require.NoError(t, err)

	assert.Equal(t, StatementInsert, stmt.Type)
	assert.Equal(t, storage.Row{ID: 1, Username: "user1", Email: "person1@example.com"}, stmt.Row)
}

func TestPrepareSelect(t *testing.T) {
	stmt, err := Prepare("  select  ")
	require.NoError(t, err)
	assert.Equal(t, StatementSelect, stmt.Type)
}

func TestPrepareErrors(t *testing.T) {
	cases := []struct {
		input string
		want  error
	}{
		{"insert", ErrSyntax},
		{"insert 1 user1", ErrSyntax},
		{"insert 1 user1 a@b extra", ErrSyntax},
		{"insert one user1 a@b", ErrSyntax},
		{"insert 4294967296 user1 a@b", ErrSyntax},
		{"insert -1 cstack foo@bar.com", ErrNegativeID},
		{"insert -99999999999999999999 a b", ErrNegativeID},
		{"insert 99999999999999999999 a b", ErrSyntax},
		{"insert -abc a b", ErrSyntax},
		{"insert -1 " + strings.Repeat("a", 33) + " a@b", ErrNegativeID},
		{"insert 1 " + strings.Repeat("a", 33) + " a@b", storage.ErrStringTooLong},
		{"insert 1 a " + strings.Repeat("a", 256), storage.ErrStringTooLong},
		{"select *", ErrSyntax},
		{"update 1", ErrUnrecognizedStatement},
		{"", ErrUnrecognizedStatement},
	}

	for _, tc := range cases {
		_, err := Prepare(tc.input)
		assert.ErrorIs(t, err, tc.want, tc.input)
	}
}

func TestPrepareMaxID(t *testing.T) {
	stmt, err := Prepare("insert 4294967295 a b")
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), stmt.Row.ID)
}
