package storage

import (
	"encoding/binary"
	"fmt"
)

const PageSize = 4096

type NodeType uint8

const (
	NodeTypeInternal NodeType = iota
	NodeTypeLeaf
)

// Page is a fixed size buffer. All reads and writes go through slice so an
// offset outside the buffer surfaces as ErrPageBounds instead of a panic.
type Page struct {
	ID   uint32
	Data []byte
}

func NewPage(id uint32) *Page {
	return &Page{
		ID:   id,
		Data: make([]byte, PageSize),
	}
}

func (p *Page) slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(p.Data) {
		return nil, fmt.Errorf("page %d [%d:%d]: %w", p.ID, off, off+n, ErrPageBounds)
	}
	return p.Data[off : off+n], nil
}

func (p *Page) uint32At(off int) (uint32, error) {
	raw, err := p.slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

func (p *Page) putUint32At(off int, v uint32) error {
	raw, err := p.slice(off, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(raw, v)
	return nil
}
