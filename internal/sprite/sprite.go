// Package sprite composes tile sets, tile maps and palettes into images.
package sprite

import (
	"errors"
	"fmt"
	"image"

	"github.com/Fisch03/thanatos/internal/palette"
	"github.com/Fisch03/thanatos/internal/tile"
)

// ErrSizeMismatch is returned when the sprite size does not match its tile map.
var ErrSizeMismatch = errors.New("sprite size does not match tile map size")

// Sprite is an arrangement of tiles. Tile sets, maps and palettes are
// shared between sprites and must not be modified after creation.
type Sprite struct {
	Width  int // in tiles
	Height int // in tiles

	Tiles    *tile.Set
	Map      tile.Map
	Palettes *palette.Collection
}

// New returns a new sprite, the tile map has to contain exactly
// width*height entries.
func New(width, height int, tiles *tile.Set, tileMap tile.Map, palettes *palette.Collection) (*Sprite, error) {
	if width <= 0 || height <= 0 || width*height != len(tileMap) {
		return nil, fmt.Errorf("%w: %dx%d tiles, map has %d entries",
			ErrSizeMismatch, width, height, len(tileMap))
	}

	return &Sprite{
		Width:    width,
		Height:   height,
		Tiles:    tiles,
		Map:      tileMap,
		Palettes: palettes,
	}, nil
}

// Bounds returns the size of the sprite image in pixels.
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width*tile.Size, s.Height*tile.Size)
}

// Image renders the sprite. Every map entry selects its tile, palette and
// flip settings.
func (s *Sprite) Image() *image.RGBA {
	img := image.NewRGBA(s.Bounds())
	for i, entry := range s.Map {
		x := (i % s.Width) * tile.Size
		y := (i / s.Width) * tile.Size

		t := s.Tiles.Get(entry.TileIndex())
		pal := s.Palettes.Get(entry.PaletteIndex())
		t.Draw(img, x, y, pal, entry.Settings())
	}
	return img
}
