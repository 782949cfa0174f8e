// Package detector handles ROM map detection.
package detector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fisch03/thanatos/internal/options"
	"github.com/Fisch03/thanatos/internal/rom"
	"github.com/Fisch03/thanatos/internal/rommap"
	"github.com/retroenv/retrogolib/log"
)

// ErrNoRomMap is returned when no ROM map was given or found.
var ErrNoRomMap = errors.New("no rom map found for the rom, pass one with -m or use the scan command")

// mapExtension is the extension of ROM map files.
const mapExtension = ".toml"

// Detection is the ROM map chosen for a ROM.
type Detection struct {
	Map    *rommap.Map
	Path   string
	Forced bool // the map does not list the ROM checksum
}

// Detector picks the ROM map to use for a ROM.
type Detector struct {
	logger *log.Logger
}

// New creates a new ROM map detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect returns the ROM map for the ROM. An explicitly passed map is used
// even if it does not support the ROM, otherwise a map file next to the ROM
// with the same base name is used if it supports the ROM.
func (d *Detector) Detect(opts options.Program, r *rom.Rom) (Detection, error) {
	if opts.RomMap != "" {
		m, err := rommap.Load(opts.RomMap)
		if err != nil {
			return Detection{}, err
		}

		forced := !m.IsCompatibleWith(r.CRC())
		if forced {
			d.logger.Warn("ROM map is not compatible with the supplied ROM, continuing anyway",
				log.String("map", opts.RomMap),
				log.Hex("crc", r.CRC()))
		}
		return Detection{Map: m, Path: opts.RomMap, Forced: forced}, nil
	}

	path := mapPathForRom(opts.Input)
	if _, err := os.Stat(path); err != nil {
		return Detection{}, ErrNoRomMap
	}

	m, err := rommap.Load(path)
	if err != nil {
		return Detection{}, fmt.Errorf("loading detected rom map: %w", err)
	}
	if !m.IsCompatibleWith(r.CRC()) {
		d.logger.Debug("Ignoring incompatible ROM map", log.String("map", path))
		return Detection{}, ErrNoRomMap
	}

	d.logger.Debug("Auto-detected ROM map", log.String("map", path))
	return Detection{Map: m, Path: path}, nil
}

// mapPathForRom returns the path of a ROM map next to the ROM file.
func mapPathForRom(romPath string) string {
	ext := filepath.Ext(romPath)
	return strings.TrimSuffix(romPath, ext) + mapExtension
}
