// Package pipeline orchestrates the extraction workflow stages.
package pipeline

import (
	"context"
	"fmt"

	"github.com/Fisch03/thanatos/internal/config"
	"github.com/Fisch03/thanatos/internal/detector"
	"github.com/Fisch03/thanatos/internal/export"
	"github.com/Fisch03/thanatos/internal/loader"
	"github.com/Fisch03/thanatos/internal/options"
	"github.com/Fisch03/thanatos/internal/rom"
	"github.com/Fisch03/thanatos/internal/scanner"
	"github.com/Fisch03/thanatos/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow of a command.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute loads the ROM of the options and runs the selected command.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	r, err := p.loader.Load(opts)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	return p.ExecuteWithRom(ctx, r, opts)
}

// ExecuteWithRom runs the selected command with a pre-loaded ROM.
func (p *Pipeline) ExecuteWithRom(ctx context.Context, r *rom.Rom, opts options.Program) error {
	switch opts.Command {
	case options.Export:
		return p.export(ctx, r, opts)
	case options.Scan:
		return p.scan(ctx, r, opts)
	case options.Verify:
		return p.verify(ctx, r, opts)
	default:
		return fmt.Errorf("unsupported command '%s'", opts.Command)
	}
}

// MapRom detects the ROM map and extracts all graphics it describes.
func (p *Pipeline) MapRom(opts options.Program, r *rom.Rom) (*rom.Mapped, error) {
	detection, err := p.detector.Detect(opts, r)
	if err != nil {
		return nil, fmt.Errorf("detecting rom map: %w", err)
	}

	var mapped *rom.Mapped
	if detection.Forced {
		mapped, err = rom.MapForced(p.logger, r, detection.Map)
	} else {
		mapped, err = rom.Map(p.logger, r, detection.Map)
	}
	if err != nil {
		return nil, fmt.Errorf("mapping rom: %w", err)
	}

	p.logger.Info("Loaded ROM",
		log.String("name", mapped.Metadata.Name),
		log.Hex("crc", mapped.Metadata.CRC),
		log.Int("sprites", len(mapped.Sprites)))
	return mapped, nil
}

func (p *Pipeline) export(ctx context.Context, r *rom.Rom, opts options.Program) error {
	mapped, err := p.MapRom(opts, r)
	if err != nil {
		return err
	}

	if opts.NoExtract {
		for _, spr := range mapped.Sprites {
			p.logger.Info("Sprite",
				log.String("name", spr.Name),
				log.String("category", spr.Category),
				log.Int("width", spr.Sprite.Width),
				log.Int("height", spr.Sprite.Height))
		}
		return nil
	}

	exp := p.newExporter(opts, r, opts.Scale, 0)
	if err := exp.Prepare(); err != nil {
		return err
	}

	p.logger.Info("Exporting sprites and palettes...")
	if err := exp.Sprites(ctx, mapped.Sprites); err != nil {
		return err
	}
	if opts.Palettes {
		if err := exp.Palettes(ctx, mapped.Palettes); err != nil {
			return err
		}
	}

	p.logger.Info("Export finished", log.Int("sprites", len(mapped.Sprites)))
	return nil
}

func (p *Pipeline) scan(ctx context.Context, r *rom.Rom, opts options.Program) error {
	p.logger.Info("Scanning ROM for tiles...", log.Int("size", r.Len()))

	s := scanner.New(p.logger, scanner.Options{
		From:      opts.From,
		To:        opts.To,
		Threshold: opts.Threshold,
		Workers:   config.Workers(opts),
	})
	candidates, err := s.Scan(ctx, r.Data())
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		p.logger.Info("Found potential tile set",
			log.Int("tiles", candidate.Tiles.Len()),
			log.Hex("start", candidate.Offset),
			log.Hex("end", candidate.End))
	}

	if !opts.NoExtract && len(candidates) > 0 {
		exp := p.newExporter(opts, r, 0, opts.Scale)
		if err := exp.Prepare(); err != nil {
			return err
		}
		for _, candidate := range candidates {
			if err := exp.TileSet(ctx, candidate); err != nil {
				return err
			}
		}
	}

	p.logger.Info("Scan finished", log.Int("tilesets", len(candidates)))
	return nil
}

func (p *Pipeline) verify(ctx context.Context, r *rom.Rom, opts options.Program) error {
	p.logger.Info("Verifying fixtures", log.String("directory", opts.Fixtures))
	if err := verification.VerifyFixtures(ctx, p.logger, r.Data(), opts.Fixtures); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	return nil
}

func (p *Pipeline) newExporter(opts options.Program, r *rom.Rom, spriteScale, tileScale int) *export.Exporter {
	return export.New(p.logger, export.Options{
		Dir:         config.OutputDir(opts, r.CRC()),
		Force:       opts.Force,
		SpriteScale: spriteScale,
		TileScale:   tileScale,
		Workers:     config.Workers(opts),
	})
}
