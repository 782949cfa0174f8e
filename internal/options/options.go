// Package options contains the program options.
package options

import "fmt"

// Command selects the operation to run on the input ROM.
type Command string

// Supported commands.
const (
	Export Command = "export"
	Scan   Command = "scan"
	Verify Command = "verify"
)

// Commands lists all supported commands in usage order.
var Commands = []Command{Export, Scan, Verify}

// ParseCommand returns the command matching name.
func ParseCommand(name string) (Command, error) {
	for _, cmd := range Commands {
		if string(cmd) == name {
			return cmd, nil
		}
	}
	return "", fmt.Errorf("unsupported command '%s'", name)
}

// Parameters contains file path options.
type Parameters struct {
	Input    string // ROM file
	Output   string `flag:"o" usage:"output directory"`
	RomMap   string `flag:"m" usage:"ROM map file describing the graphics regions"`
	Fixtures string `flag:"fixtures" usage:"directory of reference dumps named <name>_<hexoffset>"`
	Batch    string `flag:"batch" usage:"batch process files matching pattern (e.g. *.sfc)"`
}

// Flags contains behavior options.
type Flags struct {
	Force   bool `flag:"force" usage:"overwrite the output directory if it exists"`
	Raw     bool `flag:"raw" usage:"keep a 512 byte copier header instead of removing it"`
	Workers int  `flag:"workers" usage:"number of parallel workers (default: number of CPUs)"`
	Debug   bool `flag:"debug" usage:"enable debug logging"`
	Quiet   bool `flag:"q" usage:"quiet mode"`
}

// ScanFlags contains options of the scan command.
type ScanFlags struct {
	Threshold int `flag:"t" usage:"minimum number of tiles of a tile set" default:"128"`
	From      int `flag:"from" usage:"first offset to scan"`
	To        int `flag:"to" usage:"offset to stop scanning at (default: end of ROM)"`
}

// ImageFlags contains image output options.
type ImageFlags struct {
	Scale     int  `flag:"scale" usage:"upscaling factor of exported images"`
	Palettes  bool `flag:"palettes" usage:"also export palette swatches"`
	NoExtract bool `flag:"n" usage:"only report results without writing images"`
}

// Program options of the graphics extractor.
type Program struct {
	Command Command

	Parameters
	Flags
	ScanFlags
	ImageFlags
}
