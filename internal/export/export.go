// Package export writes extracted graphics as PNG images.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Fisch03/thanatos/internal/palette"
	"github.com/Fisch03/thanatos/internal/rom"
	"github.com/Fisch03/thanatos/internal/scanner"
	"github.com/Fisch03/thanatos/internal/tile"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSpriteScale is the default upscaling factor of sprites.
	DefaultSpriteScale = 5
	// DefaultTileScale is the default upscaling factor of scanned tiles.
	DefaultTileScale = 10

	paletteDir   = "palettes"
	paletteScale = 16
)

// ErrOutputExists is returned when the output directory exists and
// overwriting was not requested.
var ErrOutputExists = errors.New("output directory already exists")

// Options controls where and how images are written.
type Options struct {
	Dir         string
	Force       bool // remove an existing output directory
	SpriteScale int
	TileScale   int
	Workers     int
}

// Exporter writes images into an output directory.
type Exporter struct {
	logger *log.Logger
	opts   Options
}

// New returns a new exporter.
func New(logger *log.Logger, opts Options) *Exporter {
	if opts.SpriteScale <= 0 {
		opts.SpriteScale = DefaultSpriteScale
	}
	if opts.TileScale <= 0 {
		opts.TileScale = DefaultTileScale
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Exporter{
		logger: logger,
		opts:   opts,
	}
}

// Prepare creates the output directory. An existing directory is removed
// first if forced, otherwise it is an error.
func (e *Exporter) Prepare() error {
	_, err := os.Stat(e.opts.Dir)
	switch {
	case err == nil && e.opts.Force:
		if err := os.RemoveAll(e.opts.Dir); err != nil {
			return fmt.Errorf("removing old output directory: %w", err)
		}
	case err == nil:
		return fmt.Errorf("%w: %s", ErrOutputExists, e.opts.Dir)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("checking output directory: %w", err)
	}

	if err := os.MkdirAll(e.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// Sprites writes every sprite to <dir>/<category>/<name>.png, sprites
// without category are written to the output directory.
func (e *Exporter) Sprites(ctx context.Context, sprites []rom.MappedSprite) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for _, spr := range sprites {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			dir := e.opts.Dir
			if spr.Category != "" {
				dir = filepath.Join(dir, spr.Category)
			}
			path := filepath.Join(dir, spr.Name+".png")

			if err := writeImage(path, spr.Sprite.Image(), e.opts.SpriteScale); err != nil {
				return fmt.Errorf("exporting sprite '%s': %w", spr.Name, err)
			}
			e.logger.Info("Exported sprite", log.String("path", path))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("exporting sprites: %w", err)
	}
	return nil
}

// Palettes writes a swatch of every palette collection to
// <dir>/palettes/<name>.png.
func (e *Exporter) Palettes(ctx context.Context, palettes []rom.MappedPalette) error {
	for _, pal := range palettes {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(e.opts.Dir, paletteDir, pal.Name+".png")
		if err := writeImage(path, pal.Palettes.Image(), paletteScale); err != nil {
			return fmt.Errorf("exporting palette '%s': %w", pal.Name, err)
		}
		e.logger.Debug("Exported palette", log.String("path", path))
	}
	return nil
}

// TileSet writes every tile of a scan candidate as a grayscale image to
// <dir>/tiles_<start>-<end>/tile_NNNN.png.
func (e *Exporter) TileSet(ctx context.Context, candidate scanner.Candidate) error {
	dir := filepath.Join(e.opts.Dir, TileSetDirName(candidate))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for i, t := range candidate.Tiles.Tiles() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(dir, fmt.Sprintf("tile_%04d.png", i))
			return writeImage(path, t.Image(&palette.BlackWhite, tile.Settings{}), e.opts.TileScale)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("exporting tiles at %#07x: %w", candidate.Offset, err)
	}
	return nil
}

// TileSetDirName returns the directory name of the tiles of a candidate.
func TileSetDirName(candidate scanner.Candidate) string {
	return fmt.Sprintf("tiles_0x%05x-0x%05x", candidate.Offset, candidate.End)
}

// scale enlarges img by factor without smoothing.
func scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func writeImage(path string, img image.Image, factor int) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file %s: %w", path, closeErr)
		}
	}()

	if err := png.Encode(file, scale(img, factor)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
