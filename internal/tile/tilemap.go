package tile

import (
	"encoding/binary"
	"fmt"

	"github.com/Fisch03/thanatos/internal/compression"
)

const mapEntryBytes = 2

// MapEntry is a 16 bit tile map entry in the SNES format vhopppcc cccccccc.
type MapEntry uint16

// TileIndex returns the referenced tile.
func (e MapEntry) TileIndex() int {
	return int(e & 0x03ff)
}

// PaletteIndex returns the palette used to draw the tile.
func (e MapEntry) PaletteIndex() int {
	return int(e>>10) & 0x07
}

// Priority returns whether the tile is drawn in front of other layers.
func (e MapEntry) Priority() bool {
	return e&0x2000 != 0
}

// Settings returns the flip settings of the entry.
func (e MapEntry) Settings() Settings {
	return Settings{
		HFlip: e&0x4000 != 0,
		VFlip: e&0x8000 != 0,
	}
}

// Map is a list of tile map entries.
type Map []MapEntry

// MapFromSlice decodes little endian tile map entries, the length has to be
// a multiple of 2 bytes.
func MapFromSlice(data []byte) (Map, error) {
	if len(data)%mapEntryBytes != 0 {
		return nil, fmt.Errorf("%w: tile map size %d is not a multiple of %d",
			compression.ErrInvalidData, len(data), mapEntryBytes)
	}

	m := make(Map, len(data)/mapEntryBytes)
	for i := range m {
		m[i] = MapEntry(binary.LittleEndian.Uint16(data[i*mapEntryBytes:]))
	}
	return m, nil
}

// MapFromCompressed decompresses the region at offset of src and decodes it
// as a tile map.
func MapFromCompressed(src []byte, offset int) (Map, error) {
	result, err := compression.New(src, offset).Decompress()
	if err != nil {
		return nil, fmt.Errorf("decompressing tile map at %#06x: %w", offset, err)
	}
	return MapFromSlice(result.Data)
}
