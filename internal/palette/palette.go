// Package palette converts decompressed data into SNES palettes.
package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"

	"github.com/Fisch03/thanatos/internal/compression"
)

const (
	// ColorsPerPalette is the number of colors of a 4bpp palette.
	ColorsPerPalette = 16
	// PaletteCount is the number of palettes in a collection.
	PaletteCount = 16

	colorSize       = 2
	paletteSize     = ColorsPerPalette * colorSize
	collectionBytes = PaletteCount * paletteSize
)

// ColorIndex is an index into a palette, index 0 is transparent.
type ColorIndex uint8

// Transparent returns whether the index refers to the transparent color.
func (c ColorIndex) Transparent() bool {
	return c == 0
}

// Palette contains the colors of a single 16 color palette.
type Palette [ColorsPerPalette]color.RGBA

// Collection contains all palettes of a palette region.
type Collection [PaletteCount]Palette

// BlackWhite is a grayscale palette used to preview tiles without palette
// information.
var BlackWhite = func() Palette {
	var p Palette
	for i := range p {
		v := uint8(i * 0x11)
		p[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return p
}()

// FromSlice decodes 32 bytes of little endian BGR555 colors.
func FromSlice(data []byte) (Palette, error) {
	var p Palette
	if len(data) != paletteSize {
		return p, fmt.Errorf("%w: palette needs %d bytes, got %d", compression.ErrInvalidData, paletteSize, len(data))
	}

	for i := range p {
		p[i] = decodeColor(binary.LittleEndian.Uint16(data[i*colorSize:]))
	}
	return p, nil
}

// decodeColor converts a 15 bit BGR color to 8 bit RGB.
func decodeColor(value uint16) color.RGBA {
	return color.RGBA{
		R: uint8(value&0x1f) << 3,
		G: uint8(value>>5&0x1f) << 3,
		B: uint8(value>>10&0x1f) << 3,
		A: 0xff,
	}
}

// Color returns the color at the given index.
func (p *Palette) Color(index ColorIndex) color.RGBA {
	return p[index&0x0f]
}

// CollectionFromSlice decodes a full collection of 16 palettes, the data
// has to be exactly 512 bytes.
func CollectionFromSlice(data []byte) (*Collection, error) {
	if len(data) != collectionBytes {
		return nil, fmt.Errorf("%w: palette collection needs %d bytes, got %d",
			compression.ErrInvalidData, collectionBytes, len(data))
	}

	c := &Collection{}
	c.AddPaletteData(0, data)
	return c, nil
}

// CollectionFromCompressed decompresses the region at offset of src and
// decodes it as a palette collection.
func CollectionFromCompressed(src []byte, offset int) (*Collection, error) {
	result, err := compression.New(src, offset).Decompress()
	if err != nil {
		return nil, fmt.Errorf("decompressing palettes at %#06x: %w", offset, err)
	}
	return CollectionFromSlice(result.Data)
}

// AddPaletteData overwrites palettes starting at palette index start with
// the given data. Incomplete trailing palettes and palettes past the end of
// the collection are ignored.
func (c *Collection) AddPaletteData(start int, data []byte) {
	for i := 0; start+i < PaletteCount && (i+1)*paletteSize <= len(data); i++ {
		p, _ := FromSlice(data[i*paletteSize : (i+1)*paletteSize])
		c[start+i] = p
	}
}

// Get returns the palette with the given index.
func (c *Collection) Get(index int) *Palette {
	return &c[index%PaletteCount]
}
