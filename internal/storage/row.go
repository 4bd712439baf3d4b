package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	ColumnUsernameSize = 32
	ColumnEmailSize    = 255

	// text fields keep one extra byte for the NUL terminator
	idSize       = 4
	usernameSize = ColumnUsernameSize + 1
	emailSize    = ColumnEmailSize + 1

	idOffset       = 0
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + usernameSize

	RowSize = idSize + usernameSize + emailSize
)

type Row struct {
	ID       uint32
	Username string
	Email    string
}

func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

func (r Row) Validate() error {
	if len(r.Username) > ColumnUsernameSize || len(r.Email) > ColumnEmailSize {
		return ErrStringTooLong
	}
	return nil
}

func SerializeRow(r Row, dst []byte) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if len(dst) < RowSize {
		return fmt.Errorf("row needs %d bytes, have %d: %w", RowSize, len(dst), ErrPageBounds)
	}

	binary.LittleEndian.PutUint32(dst[idOffset:], r.ID)
	putText(dst[usernameOffset:usernameOffset+usernameSize], r.Username)
	putText(dst[emailOffset:emailOffset+emailSize], r.Email)
	return nil
}

func DeserializeRow(src []byte) (Row, error) {
	if len(src) < RowSize {
		return Row{}, fmt.Errorf("row needs %d bytes, have %d: %w", RowSize, len(src), ErrPageBounds)
	}

	return Row{
		ID:       binary.LittleEndian.Uint32(src[idOffset:]),
		Username: getText(src[usernameOffset : usernameOffset+usernameSize]),
		Email:    getText(src[emailOffset : emailOffset+emailSize]),
	}, nil
}

func putText(field []byte, s string) {
	n := copy(field, s)
	clear(field[n:])
}

func getText(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}
