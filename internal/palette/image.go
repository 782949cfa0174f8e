package palette

import "image"

// Image renders the collection as a swatch with one row per palette and one
// pixel per color.
func (c *Collection) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ColorsPerPalette, PaletteCount))
	for y := range c {
		for x, col := range c[y] {
			img.SetRGBA(x, y, col)
		}
	}
	return img
}
