package tile

import (
	"fmt"

	"github.com/Fisch03/thanatos/internal/compression"
)

// Set is an ordered list of tiles.
type Set struct {
	tiles []Tile
}

// SetFromSlice decodes all tiles of data, the length has to be a multiple
// of 32 bytes.
func SetFromSlice(data []byte) (*Set, error) {
	if len(data)%Bytes != 0 {
		return nil, fmt.Errorf("%w: tile data size %d is not a multiple of %d",
			compression.ErrInvalidData, len(data), Bytes)
	}

	s := &Set{tiles: make([]Tile, 0, len(data)/Bytes)}
	for offset := 0; offset < len(data); offset += Bytes {
		t, err := FromSlice(data[offset : offset+Bytes])
		if err != nil {
			return nil, err
		}
		s.tiles = append(s.tiles, t)
	}
	return s, nil
}

// SetFromCompressed decompresses the region at offset of src and decodes it
// as a tile set.
func SetFromCompressed(src []byte, offset int) (*Set, error) {
	result, err := compression.New(src, offset).Decompress()
	if err != nil {
		return nil, fmt.Errorf("decompressing tiles at %#06x: %w", offset, err)
	}
	return SetFromSlice(result.Data)
}

// Len returns the number of tiles.
func (s *Set) Len() int {
	return len(s.tiles)
}

// Tiles returns all tiles of the set.
func (s *Set) Tiles() []Tile {
	return s.tiles
}

// Get returns the tile at index. Indices outside of the set return an empty
// tile, tile maps commonly reference tiles that are loaded by other code.
func (s *Set) Get(index int) *Tile {
	if index < 0 || index >= len(s.tiles) {
		return &Tile{}
	}
	return &s.tiles[index]
}

// AddTileData places the tiles of partial at the given tile offset, growing
// the set if needed and replacing any tiles already present.
func (s *Set) AddTileData(offset int, partial *Set) {
	end := offset + partial.Len()
	if end > len(s.tiles) {
		s.tiles = append(s.tiles, make([]Tile, end-len(s.tiles))...)
	}
	copy(s.tiles[offset:end], partial.tiles)
}
