// Package config handles application configuration and setup
package config

import (
	"fmt"
	"runtime"

	"github.com/Fisch03/thanatos/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// DefaultExportDir is the output directory of the export command.
const DefaultExportDir = "export"

// CreateLogger creates a logger for the given verbosity. Debug takes
// precedence over quiet.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Workers returns the number of parallel workers to use.
func Workers(opts options.Program) int {
	if opts.Workers > 0 {
		return opts.Workers
	}
	return runtime.NumCPU()
}

// OutputDir returns the output directory for the command, a scan without
// explicit directory writes to a directory named after the ROM checksum.
func OutputDir(opts options.Program, crc uint32) string {
	if opts.Output != "" {
		return opts.Output
	}
	if opts.Command == options.Scan {
		return fmt.Sprintf("scan_%08x", crc)
	}
	return DefaultExportDir
}
