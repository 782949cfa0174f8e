// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Fisch03/thanatos/internal/options"
	"github.com/Fisch03/thanatos/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile runs the command of the options on a single ROM file.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	p := pipeline.New(logger)
	if err := p.Execute(ctx, opts); err != nil {
		return fmt.Errorf("processing %s: %w", opts.Input, err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputDir generates the output directory name for a ROM file
// processed as part of a batch.
func GenerateOutputDir(inputFile string, cmd options.Command) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + "_" + string(cmd)
}

// BatchOutputDir returns the output directory of a ROM file processed as
// part of a batch, placed inside baseDir if one is given.
func BatchOutputDir(baseDir, inputFile string, cmd options.Command) string {
	dir := GenerateOutputDir(inputFile, cmd)
	if baseDir == "" {
		return dir
	}
	return filepath.Join(baseDir, filepath.Base(dir))
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("thanatos", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
