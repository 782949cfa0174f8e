// Package verification compares decompressed ROM regions against stored
// reference dumps.
package verification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Fisch03/thanatos/internal/compression"
	"github.com/retroenv/retrogolib/log"
)

// maxLoggedDiffs limits the mismatching offsets logged per fixture.
const maxLoggedDiffs = 10

// ErrMismatch is returned when at least one fixture does not match.
var ErrMismatch = errors.New("decompressed data mismatch")

// Fixture is a reference dump of the decompressed region at Offset.
type Fixture struct {
	Name   string
	Offset int
	Path   string
}

// ParseFixtureName splits a fixture file name of the form <name>_<hexoffset>.
func ParseFixtureName(fileName string) (string, int, error) {
	idx := strings.LastIndexByte(fileName, '_')
	if idx < 0 {
		return "", 0, fmt.Errorf("fixture name '%s' has no offset", fileName)
	}

	offset, err := strconv.ParseUint(strings.TrimPrefix(fileName[idx+1:], "0x"), 16, 32)
	if err != nil {
		return "", 0, fmt.Errorf("parsing offset of fixture '%s': %w", fileName, err)
	}
	return fileName[:idx], int(offset), nil
}

// LoadFixtures returns all fixtures of dir sorted by file name.
func LoadFixtures(dir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fixture directory: %w", err)
	}

	var fixtures []Fixture
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name, offset, err := ParseFixtureName(entry.Name())
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, Fixture{
			Name:   name,
			Offset: offset,
			Path:   filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Path < fixtures[j].Path
	})
	return fixtures, nil
}

// VerifyFixtures decompresses the region of every fixture in dir and
// compares the output with the fixture content.
func VerifyFixtures(ctx context.Context, logger *log.Logger, data []byte, dir string) error {
	fixtures, err := LoadFixtures(dir)
	if err != nil {
		return err
	}

	var failed int
	for _, fixture := range fixtures {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := verifyFixture(logger, data, fixture); err != nil {
			failed++
			logger.Warn("Fixture mismatch",
				log.String("name", fixture.Name),
				log.Hex("offset", fixture.Offset),
				log.Err(err))
			continue
		}

		logger.Debug("Fixture matches",
			log.String("name", fixture.Name),
			log.Hex("offset", fixture.Offset))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d fixtures failed", ErrMismatch, failed, len(fixtures))
	}
	logger.Info("All fixtures match", log.Int("fixtures", len(fixtures)))
	return nil
}

func verifyFixture(logger *log.Logger, data []byte, fixture Fixture) error {
	expected, err := os.ReadFile(fixture.Path)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	result, err := compression.New(data, fixture.Offset).WithLogger(logger).Decompress()
	if err != nil {
		return fmt.Errorf("decompressing: %w", err)
	}

	return checkBufferEqual(logger, expected, result.Data)
}

func checkBufferEqual(logger *log.Logger, expected, output []byte) error {
	if len(expected) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(expected), len(output))
	}

	var diffs uint64
	for i := range expected {
		if expected[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedDiffs {
			logger.Warn("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", expected[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
