// Package tile converts decompressed data into SNES 4bpp tiles and tile maps.
package tile

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Fisch03/thanatos/internal/compression"
	"github.com/Fisch03/thanatos/internal/palette"
)

const (
	// Size is the width and height of a tile in pixels.
	Size = 8
	// Bytes is the size of a 4bpp tile in bytes.
	Bytes = 32

	planeCount = 4
	pixels     = Size * Size
)

// Tile contains the palette indices of an 8x8 tile in row order.
type Tile [pixels]palette.ColorIndex

// Settings controls how a tile is drawn.
type Settings struct {
	HFlip bool
	VFlip bool
}

// FromSlice decodes a 32 byte planar tile. Bit planes 0 and 1 are stored
// interleaved per row in the first 16 bytes, planes 2 and 3 in the second 16.
func FromSlice(data []byte) (Tile, error) {
	var t Tile
	if len(data) != Bytes {
		return t, fmt.Errorf("%w: tile needs %d bytes, got %d", compression.ErrInvalidData, Bytes, len(data))
	}

	for row := range Size {
		var planes [planeCount]byte
		for pair := range planeCount / 2 {
			offset := 16*pair + row*2
			planes[pair*2] = data[offset]
			planes[pair*2+1] = data[offset+1]
		}

		for col := range Size {
			shift := 7 - col
			var index palette.ColorIndex
			for plane, bits := range planes {
				index |= palette.ColorIndex((bits>>shift)&1) << plane
			}
			t[row*Size+col] = index
		}
	}
	return t, nil
}

// At returns the color index of the pixel at x, y.
func (t *Tile) At(x, y int) palette.ColorIndex {
	return t[y*Size+x]
}

// Image renders the tile with the given palette, color index 0 is transparent.
func (t *Tile) Image(pal *palette.Palette, settings Settings) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	t.Draw(img, 0, 0, pal, settings)
	return img
}

// Draw renders the tile into img with its top left corner at x, y.
func (t *Tile) Draw(img *image.RGBA, x, y int, pal *palette.Palette, settings Settings) {
	for ty := range Size {
		for tx := range Size {
			sx, sy := tx, ty
			if settings.HFlip {
				sx = Size - 1 - tx
			}
			if settings.VFlip {
				sy = Size - 1 - ty
			}

			index := t.At(sx, sy)
			if index.Transparent() {
				img.SetRGBA(x+tx, y+ty, color.RGBA{})
				continue
			}
			img.SetRGBA(x+tx, y+ty, pal.Color(index))
		}
	}
}
