package rom

import (
	"errors"
	"fmt"

	"github.com/Fisch03/thanatos/internal/compression"
	"github.com/Fisch03/thanatos/internal/palette"
	"github.com/Fisch03/thanatos/internal/rommap"
	"github.com/Fisch03/thanatos/internal/sprite"
	"github.com/Fisch03/thanatos/internal/tile"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

var (
	// ErrIncompatibleMap is returned when the ROM map does not list the ROM checksum.
	ErrIncompatibleMap = errors.New("incompatible rom map")
	// ErrInvalidPaletteDefinition is returned for palette definitions without a region.
	ErrInvalidPaletteDefinition = errors.New("invalid palette definition")
	// ErrUnknownPalette is returned when a sprite references a missing palette.
	ErrUnknownPalette = errors.New("unknown palette")
	// ErrUnknownTileset is returned when a sprite references a missing tile set.
	ErrUnknownTileset = errors.New("unknown tileset")
)

// unknownName is used as ROM name when a map is applied to an unlisted ROM.
const unknownName = "Unknown"

// Mapped contains all graphics extracted from a ROM.
type Mapped struct {
	Metadata rommap.Metadata
	Palettes []MappedPalette
	Sprites  []MappedSprite
}

// MappedPalette is a named palette collection.
type MappedPalette struct {
	Name     string
	Palettes *palette.Collection
}

// MappedSprite is a named sprite with an optional category.
type MappedSprite struct {
	Name     string
	Category string
	Sprite   *sprite.Sprite
}

// Map extracts the graphics described by m from the ROM. The map has to
// list the checksum of the ROM.
func Map(logger *log.Logger, r *Rom, m *rommap.Map) (*Mapped, error) {
	metadata, ok := m.CompatibleMetadata(r.CRC())
	if !ok {
		return nil, fmt.Errorf("%w: crc %#08x is not supported", ErrIncompatibleMap, r.CRC())
	}
	return mapRom(logger, r, m, metadata)
}

// MapForced extracts the graphics described by m from the ROM without
// checking whether the map supports the ROM.
func MapForced(logger *log.Logger, r *Rom, m *rommap.Map) (*Mapped, error) {
	metadata := rommap.Metadata{
		Name: unknownName,
		CRC:  r.CRC(),
	}
	return mapRom(logger, r, m, metadata)
}

func mapRom(logger *log.Logger, r *Rom, m *rommap.Map, metadata rommap.Metadata) (*Mapped, error) {
	logger.Debug("Decompressing palette data", log.Int("definitions", len(m.Palettes)))
	palettes, err := mapPalettes(r.Data(), m.Palettes)
	if err != nil {
		return nil, err
	}

	logger.Debug("Decompressing tileset data", log.Int("definitions", len(m.Tilesets)))
	tilesets, err := mapTilesets(r.Data(), m.Tilesets)
	if err != nil {
		return nil, err
	}

	logger.Debug("Decompressing tilemap data", log.Int("sprites", len(m.Sprites)))
	tileMaps, err := mapTileMaps(r.Data(), m.Sprites)
	if err != nil {
		return nil, err
	}

	logger.Debug("Building sprites")
	mapped := &Mapped{
		Metadata: metadata,
		Palettes: make([]MappedPalette, 0, len(m.Palettes)),
		Sprites:  make([]MappedSprite, 0, len(m.Sprites)),
	}

	for _, def := range m.Palettes {
		mapped.Palettes = append(mapped.Palettes, MappedPalette{
			Name:     def.Name,
			Palettes: palettes[def.Name],
		})
	}

	usedTilesets := set.New[string]()
	for _, def := range m.Sprites {
		pal, ok := palettes[def.Palette]
		if !ok {
			return nil, fmt.Errorf("%w: sprite '%s' references '%s'", ErrUnknownPalette, def.Name, def.Palette)
		}
		tiles, ok := tilesets[def.Tileset]
		if !ok {
			return nil, fmt.Errorf("%w: sprite '%s' references '%s'", ErrUnknownTileset, def.Name, def.Tileset)
		}

		usedTilesets.Add(def.Tileset)

		spr, err := sprite.New(def.Size[0], def.Size[1], tiles, tileMaps[def.LayoutRegion], pal)
		if err != nil {
			return nil, fmt.Errorf("building sprite '%s': %w", def.Name, err)
		}

		mapped.Sprites = append(mapped.Sprites, MappedSprite{
			Name:     def.Name,
			Category: def.Category,
			Sprite:   spr,
		})
	}

	for _, def := range m.Tilesets {
		if !usedTilesets.Contains(def.Name) {
			logger.Warn("Tileset is not used by any sprite", log.String("tileset", def.Name))
		}
	}

	return mapped, nil
}

// mapPalettes builds all palette collections. The first region of a
// definition contains the full collection, its start index is ignored.
func mapPalettes(data []byte, defs []rommap.PaletteDefinition) (map[string]*palette.Collection, error) {
	palettes := make(map[string]*palette.Collection, len(defs))
	for _, def := range defs {
		if len(def.Layout) == 0 {
			return nil, fmt.Errorf("%w: '%s' has no regions",
				ErrInvalidPaletteDefinition, def.Name)
		}

		collection, err := palette.CollectionFromCompressed(data, def.Layout[0].Region)
		if err != nil {
			return nil, fmt.Errorf("palette '%s': %w", def.Name, err)
		}

		for _, layout := range def.Layout[1:] {
			if layout.Start < 0 || layout.Start >= palette.PaletteCount {
				return nil, fmt.Errorf("%w: '%s', start %d out of range",
					ErrInvalidPaletteDefinition, def.Name, layout.Start)
			}
			result, err := compression.New(data, layout.Region).Decompress()
			if err != nil {
				return nil, fmt.Errorf("palette '%s': decompressing region %#06x: %w", def.Name, layout.Region, err)
			}
			collection.AddPaletteData(layout.Start, result.Data)
		}

		palettes[def.Name] = collection
	}
	return palettes, nil
}

func mapTilesets(data []byte, defs []rommap.TilesetDefinition) (map[string]*tile.Set, error) {
	tilesets := make(map[string]*tile.Set, len(defs))
	for _, def := range defs {
		set := &tile.Set{}
		for _, layout := range def.Layout {
			if layout.Offset < 0 {
				return nil, fmt.Errorf("tileset '%s': negative tile offset %d", def.Name, layout.Offset)
			}
			partial, err := tile.SetFromCompressed(data, layout.Region)
			if err != nil {
				return nil, fmt.Errorf("tileset '%s': %w", def.Name, err)
			}
			set.AddTileData(layout.Offset, partial)
		}
		tilesets[def.Name] = set
	}
	return tilesets, nil
}

// mapTileMaps decompresses every referenced tile map region once, sprites
// can share a region.
func mapTileMaps(data []byte, defs []rommap.SpriteDefinition) (map[int]tile.Map, error) {
	tileMaps := make(map[int]tile.Map)
	for _, def := range defs {
		if _, ok := tileMaps[def.LayoutRegion]; ok {
			continue
		}

		m, err := tile.MapFromCompressed(data, def.LayoutRegion)
		if err != nil {
			return nil, fmt.Errorf("sprite '%s': %w", def.Name, err)
		}
		tileMaps[def.LayoutRegion] = m
	}
	return tileMaps, nil
}
