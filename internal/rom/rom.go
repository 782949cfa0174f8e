// Package rom loads ROM images and extracts the graphics described by a
// ROM map.
package rom

import (
	"fmt"
	"hash/crc32"
	"os"
)

// Rom is a ROM image identified by its CRC32 checksum.
type Rom struct {
	data []byte
	crc  uint32
}

// Open reads the ROM file at path.
func Open(path string) (*Rom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom file %s: %w", path, err)
	}
	return New(data), nil
}

// New returns a ROM for the given data. The data must not be modified
// afterwards.
func New(data []byte) *Rom {
	return &Rom{
		data: data,
		crc:  crc32.ChecksumIEEE(data),
	}
}

// Data returns the ROM content.
func (r *Rom) Data() []byte {
	return r.data
}

// CRC returns the CRC32 checksum of the ROM.
func (r *Rom) CRC() uint32 {
	return r.crc
}

// Len returns the size of the ROM in bytes.
func (r *Rom) Len() int {
	return len(r.data)
}
