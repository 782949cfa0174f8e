package palette

import (
	"errors"
	"image/color"
	"testing"

	"github.com/Fisch03/thanatos/internal/compression"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeColor(t *testing.T) {
	tests := []struct {
		name     string
		value    uint16
		expected color.RGBA
	}{
		{"black", 0x0000, color.RGBA{A: 0xff}},
		{"red", 0x001f, color.RGBA{R: 0xf8, A: 0xff}},
		{"green", 0x03e0, color.RGBA{G: 0xf8, A: 0xff}},
		{"blue", 0x7c00, color.RGBA{B: 0xf8, A: 0xff}},
		{"white", 0x7fff, color.RGBA{R: 0xf8, G: 0xf8, B: 0xf8, A: 0xff}},
		{"mixed", 0x2108, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeColor(tt.value))
		})
	}
}

func TestFromSlice(t *testing.T) {
	data := make([]byte, 32)
	data[2], data[3] = 0x1f, 0x00 // color 1 red
	data[30], data[31] = 0x00, 0x7c

	p, err := FromSlice(data)
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 0xff}, p.Color(0))
	assert.Equal(t, color.RGBA{R: 0xf8, A: 0xff}, p.Color(1))
	assert.Equal(t, color.RGBA{B: 0xf8, A: 0xff}, p.Color(15))

	_, err = FromSlice(data[:31])
	assert.True(t, errors.Is(err, compression.ErrInvalidData))
}

func TestCollectionFromSlice(t *testing.T) {
	data := make([]byte, 512)
	// palette 3, color 2
	data[3*32+4] = 0xe0
	data[3*32+5] = 0x03

	c, err := CollectionFromSlice(data)
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 0xf8, A: 0xff}, c.Get(3).Color(2))
	assert.Equal(t, color.RGBA{A: 0xff}, c.Get(2).Color(2))

	_, err = CollectionFromSlice(data[:510])
	assert.True(t, errors.Is(err, compression.ErrInvalidData))
}

func TestCollectionFromCompressed(t *testing.T) {
	// repeat 0x00 for 0x200 bytes: count = 0x1fd + 3
	src := []byte{0xe1, 0xfd, 0x00, 0xff}
	c, err := CollectionFromCompressed(src, 0)
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 0xff}, c.Get(15).Color(15))

	// 0x1fe bytes
	src = []byte{0xe1, 0xfb, 0x00, 0xff}
	_, err = CollectionFromCompressed(src, 0)
	assert.True(t, errors.Is(err, compression.ErrInvalidData))

	_, err = CollectionFromCompressed([]byte{0x80, 0x01, 0xff}, 0)
	assert.True(t, errors.Is(err, compression.ErrInvalidOperation))
}

func TestAddPaletteData(t *testing.T) {
	c := &Collection{}
	data := make([]byte, 64+10)
	data[0] = 0x1f
	data[32] = 0x1f

	c.AddPaletteData(14, data)
	assert.Equal(t, color.RGBA{}, c.Get(13).Color(0))
	assert.Equal(t, color.RGBA{R: 0xf8, A: 0xff}, c.Get(14).Color(0))
	assert.Equal(t, color.RGBA{R: 0xf8, A: 0xff}, c.Get(15).Color(0))

	// palettes past the end of the collection are dropped
	c.AddPaletteData(15, data)
	assert.Equal(t, color.RGBA{R: 0xf8, A: 0xff}, c.Get(15).Color(0))
}

func TestBlackWhite(t *testing.T) {
	assert.Equal(t, color.RGBA{A: 0xff}, BlackWhite.Color(0))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, BlackWhite.Color(15))
}

func TestCollectionImage(t *testing.T) {
	c := &Collection{}
	c[1][2] = color.RGBA{R: 1, G: 2, B: 3, A: 0xff}

	img := c.Image()
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xff}, img.RGBAAt(2, 1))
}
