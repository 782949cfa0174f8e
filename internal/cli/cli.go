// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Fisch03/thanatos/internal/options"
	"github.com/Fisch03/thanatos/internal/scanner"
)

// ParseFlags parses the command line and returns the program options.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[1:])
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage of the command, or of the program if no
// valid command was given.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}

	if e.flags == nil {
		fmt.Printf("usage: thanatos <command> [options] <rom file>\n\ncommands:\n")
		fmt.Println("  export   export sprites and palettes described by a ROM map")
		fmt.Println("  scan     scan a ROM for compressed tile sets")
		fmt.Println("  verify   compare decompressed regions against reference dumps")
		fmt.Println()
		return
	}

	fmt.Printf("usage: thanatos %s [options] <rom file>\n\n", e.flags.Name())
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

func parseArgs(args []string) (options.Program, error) {
	var opts options.Program
	if len(args) == 0 {
		return opts, &UsageError{}
	}

	cmd, err := options.ParseCommand(args[0])
	if err != nil {
		return opts, &UsageError{msg: err.Error()}
	}
	opts.Command = cmd

	flags := flag.NewFlagSet(string(cmd), flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	readOptionFlags(flags, &opts)

	switch cmd {
	case options.Export:
		readImageFlags(flags, &opts)
	case options.Scan:
		readImageFlags(flags, &opts)
		readScanFlags(flags, &opts)
	case options.Verify:
		flags.StringVar(&opts.Fixtures, "fixtures", "", "directory of reference dumps named <name>_<hexoffset>")
	}

	err = flags.Parse(args[1:])
	rest := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(rest) == 0 && opts.Batch == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(rest); err != nil {
		return opts, err
	}
	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" {
		opts.Input = rest[0]
	}
	return opts, nil
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks option values that depend on the command.
func validateOptions(opts options.Program) error {
	if opts.Command == options.Verify && opts.Fixtures == "" {
		return &UsageError{msg: "the verify command needs a fixture directory, pass it with -fixtures"}
	}
	if opts.From < 0 || opts.To < 0 || (opts.To > 0 && opts.From >= opts.To) {
		return fmt.Errorf("invalid scan range %#x-%#x", opts.From, opts.To)
	}
	if opts.Scale < 0 || opts.Workers < 0 {
		return fmt.Errorf("scale and workers can not be negative")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.sfc")
	flags.BoolVar(&opts.Raw, "raw", false, "keep a 512 byte copier header instead of removing it")
	flags.IntVar(&opts.Workers, "workers", 0, "number of parallel workers (default: number of CPUs)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readImageFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output directory")
	flags.StringVar(&opts.RomMap, "m", "", "ROM map file that provides the offsets of the palettes and sprites")
	flags.BoolVar(&opts.Force, "force", false, "overwrite the output directory if it already exists")
	flags.IntVar(&opts.Scale, "scale", 0, "upscaling factor of exported images (default: 5 for sprites, 10 for tiles)")
	flags.BoolVar(&opts.Palettes, "palettes", false, "also export palette swatches")
	flags.BoolVar(&opts.NoExtract, "n", false, "only report results without writing images")
}

func readScanFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.Threshold, "t", scanner.DefaultThreshold,
		"minimum number of tiles to consider a valid tile set, 64 finds more sets but also more garbage")
	flags.IntVar(&opts.From, "from", 0, "first offset to scan, accepts 0x prefixed hex values")
	flags.IntVar(&opts.To, "to", 0, "offset to stop scanning at (default: end of ROM)")
}
