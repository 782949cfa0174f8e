// Package rommap handles ROM map files that describe where the compressed
// graphics of a ROM are located.
package rommap

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Map describes the compressed regions of one or more ROM versions.
type Map struct {
	SupportedRoms []Metadata `toml:"supported_roms"`

	Palettes []PaletteDefinition `toml:"palette"`
	Tilesets []TilesetDefinition `toml:"tileset"`
	Sprites  []SpriteDefinition  `toml:"sprite"`
}

// Metadata identifies a ROM version by its CRC32 checksum.
type Metadata struct {
	Name string `toml:"name"`
	CRC  uint32 `toml:"crc"`
}

// PaletteDefinition builds a palette collection from one or more regions.
// The first region has to contain a full collection, following regions
// overwrite palettes beginning at their start index.
type PaletteDefinition struct {
	Name   string          `toml:"name"`
	Layout []PaletteLayout `toml:"layout"`
}

// PaletteLayout is a compressed palette region.
type PaletteLayout struct {
	Region int `toml:"region"`
	Start  int `toml:"start"`
}

// TilesetDefinition builds a tile set from one or more regions.
type TilesetDefinition struct {
	Name   string          `toml:"name"`
	Layout []TilesetLayout `toml:"layout"`
}

// TilesetLayout is a compressed tile region placed at a tile offset.
type TilesetLayout struct {
	Region int `toml:"region"`
	Offset int `toml:"offset"`
}

// SpriteDefinition describes a sprite by its size in tiles, the tile set
// and palette it uses and the region of its compressed tile map.
type SpriteDefinition struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`

	Size [2]int `toml:"size"`

	Tileset string `toml:"tileset"`
	Palette string `toml:"palette"`

	LayoutRegion int `toml:"layout-region"`
}

// Parse decodes a ROM map from its TOML representation.
func Parse(data string) (*Map, error) {
	var m Map
	if _, err := toml.Decode(data, &m); err != nil {
		return nil, fmt.Errorf("parsing rom map: %w", err)
	}
	return &m, nil
}

// Load reads and parses the ROM map file at path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom map %s: %w", path, err)
	}

	m, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return m, nil
}

// CompatibleMetadata returns the metadata of the supported ROM with the
// given checksum.
func (m *Map) CompatibleMetadata(crc uint32) (Metadata, bool) {
	for _, md := range m.SupportedRoms {
		if md.CRC == crc {
			return md, true
		}
	}
	return Metadata{}, false
}

// IsCompatibleWith returns whether the map supports the ROM with the given
// checksum.
func (m *Map) IsCompatibleWith(crc uint32) bool {
	_, ok := m.CompatibleMetadata(crc)
	return ok
}
