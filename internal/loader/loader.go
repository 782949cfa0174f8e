// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/Fisch03/thanatos/internal/options"
	"github.com/Fisch03/thanatos/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

// copierHeaderSize is the size of the header that some copier devices put
// in front of the ROM data.
const copierHeaderSize = 512

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the ROM file of the options. A copier header is detected by
// the file size and removed unless raw mode is requested, ROM maps and
// checksums refer to the data without it.
func (l *Loader) Load(opts options.Program) (*rom.Rom, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}

	if !opts.Raw && HasCopierHeader(data) {
		l.logger.Info("Removing copier header", log.String("file", opts.Input))
		data = data[copierHeaderSize:]
	}

	r := rom.New(data)
	l.logger.Debug("Loaded ROM",
		log.String("file", opts.Input),
		log.Int("size", r.Len()),
		log.Hex("crc", r.CRC()))
	return r, nil
}

// HasCopierHeader returns whether data starts with a copier header. ROM
// images are multiples of 1 KiB, a header adds another 512 bytes.
func HasCopierHeader(data []byte) bool {
	return len(data) > copierHeaderSize && len(data)%1024 == copierHeaderSize
}
