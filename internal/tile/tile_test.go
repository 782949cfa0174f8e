package tile

import (
	"errors"
	"image/color"
	"testing"

	"github.com/Fisch03/thanatos/internal/compression"
	"github.com/Fisch03/thanatos/internal/palette"
	"github.com/retroenv/retrogolib/assert"
)

// planarTile builds tile data where every pixel of row 0 uses index 0x0f and
// pixel 0 of row 1 uses index 0x05.
func planarTile() []byte {
	data := make([]byte, Bytes)
	// row 0: all four planes set
	data[0], data[1] = 0xff, 0xff
	data[16], data[17] = 0xff, 0xff
	// row 1, first pixel: planes 0 and 2
	data[2] = 0x80
	data[18] = 0x80
	return data
}

func TestFromSlice(t *testing.T) {
	tl, err := FromSlice(planarTile())
	assert.NoError(t, err)

	for x := range Size {
		assert.Equal(t, palette.ColorIndex(0x0f), tl.At(x, 0))
	}
	assert.Equal(t, palette.ColorIndex(0x05), tl.At(0, 1))
	assert.Equal(t, palette.ColorIndex(0), tl.At(1, 1))
	assert.Equal(t, palette.ColorIndex(0), tl.At(7, 7))

	_, err = FromSlice(make([]byte, 31))
	assert.True(t, errors.Is(err, compression.ErrInvalidData))
}

func TestFromSliceSinglePlanes(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		expected palette.ColorIndex
	}{
		{"plane 0", 0, 1},
		{"plane 1", 1, 2},
		{"plane 2", 16, 4},
		{"plane 3", 17, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, Bytes)
			data[tt.offset] = 0x01 // last pixel of row 0

			tl, err := FromSlice(data)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tl.At(7, 0))
			assert.Equal(t, palette.ColorIndex(0), tl.At(6, 0))
		})
	}
}

func TestTileImage(t *testing.T) {
	tl, err := FromSlice(planarTile())
	assert.NoError(t, err)

	pal := palette.BlackWhite
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gray := pal.Color(5)

	img := tl.Image(&pal, Settings{})
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, gray, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 1))

	img = tl.Image(&pal, Settings{HFlip: true})
	assert.Equal(t, gray, img.RGBAAt(7, 1))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 1))

	img = tl.Image(&pal, Settings{VFlip: true})
	assert.Equal(t, white, img.RGBAAt(3, 7))
	assert.Equal(t, gray, img.RGBAAt(0, 6))
}

func TestSetFromSlice(t *testing.T) {
	data := append(planarTile(), make([]byte, Bytes)...)

	s, err := SetFromSlice(data)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, palette.ColorIndex(0x0f), s.Get(0).At(0, 0))
	assert.Equal(t, palette.ColorIndex(0), s.Get(1).At(0, 0))
	assert.Equal(t, palette.ColorIndex(0), s.Get(5).At(0, 0))

	_, err = SetFromSlice(data[:40])
	assert.True(t, errors.Is(err, compression.ErrInvalidData))
}

func TestSetFromCompressed(t *testing.T) {
	// 64 zero bytes: two empty tiles
	s, err := SetFromCompressed([]byte{0xe0, 0x3d, 0x00, 0xff}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = SetFromCompressed([]byte{0xf0, 0x00, 0xff}, 0)
	assert.True(t, errors.Is(err, compression.ErrInvalidData))
}

func TestAddTileData(t *testing.T) {
	full, err := SetFromSlice(planarTile())
	assert.NoError(t, err)
	empty, err := SetFromSlice(make([]byte, 2*Bytes))
	assert.NoError(t, err)

	s := &Set{}
	s.AddTileData(2, full)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, palette.ColorIndex(0x0f), s.Get(2).At(0, 0))

	s.AddTileData(1, empty)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, palette.ColorIndex(0), s.Get(2).At(0, 0))
}
