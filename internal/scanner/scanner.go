// Package scanner searches ROM images for compressed tile sets.
package scanner

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/Fisch03/thanatos/internal/compression"
	"github.com/Fisch03/thanatos/internal/tile"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultThreshold is the default minimum number of tiles of a candidate.
	// Some tile sets are smaller, 64 finds more of them at the cost of more
	// false positives.
	DefaultThreshold = 128

	// maxTiles is the exclusive upper bound of tiles of a candidate.
	maxTiles = 1024

	chunkSize = 4096
)

// Options controls a scan.
type Options struct {
	From      int // first offset to scan
	To        int // exclusive end offset, 0 scans to the end of the data
	Threshold int // minimum number of tiles, 0 uses DefaultThreshold
	Workers   int // parallel workers, 0 uses the number of CPUs
}

// Candidate is a region that decompresses to a plausible tile set.
type Candidate struct {
	Offset int // first byte of the compressed region
	End    int // first byte after the compressed region
	Tiles  *tile.Set
}

// Scanner tries to decompress data at every offset.
type Scanner struct {
	logger *log.Logger
	opts   Options
}

// New returns a new scanner.
func New(logger *log.Logger, opts Options) *Scanner {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Scanner{
		logger: logger,
		opts:   opts,
	}
}

// Scan returns all candidates found in data sorted by offset. Offsets that
// fail to decompress are skipped.
func (s *Scanner) Scan(ctx context.Context, data []byte) ([]Candidate, error) {
	from, to := s.opts.From, s.opts.To
	if to <= 0 || to > len(data) {
		to = len(data)
	}
	if from < 0 || from > to {
		return nil, fmt.Errorf("invalid scan range %#x-%#x for %d bytes", from, to, len(data))
	}

	var (
		mu         sync.Mutex
		candidates []Candidate
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for start := from; start < to; start += chunkSize {
		end := min(start+chunkSize, to)

		g.Go(func() error {
			found, err := s.scanChunk(ctx, data, start, end)
			if err != nil {
				return err
			}

			mu.Lock()
			candidates = append(candidates, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Offset < candidates[j].Offset
	})
	return candidates, nil
}

func (s *Scanner) scanChunk(ctx context.Context, data []byte, start, end int) ([]Candidate, error) {
	var found []Candidate
	for offset := start; offset < end; offset++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate, ok := s.try(data, offset)
		if !ok {
			continue
		}

		s.logger.Debug("Found potential tile set",
			log.Hex("start", candidate.Offset),
			log.Hex("end", candidate.End),
			log.Int("tiles", candidate.Tiles.Len()))
		found = append(found, candidate)
	}
	return found, nil
}

// try decompresses data at offset and checks whether the result looks like
// a tile set.
func (s *Scanner) try(data []byte, offset int) (Candidate, bool) {
	result, err := compression.New(data, offset).Decompress()
	if err != nil || len(result.Data) == 0 || len(result.Data)%tile.Bytes != 0 {
		return Candidate{}, false
	}

	count := len(result.Data) / tile.Bytes
	if !s.acceptTileCount(count) {
		return Candidate{}, false
	}

	tiles, err := tile.SetFromSlice(result.Data)
	if err != nil {
		return Candidate{}, false
	}

	return Candidate{
		Offset: offset,
		End:    offset + result.BytesRead,
		Tiles:  tiles,
	}, true
}

func (s *Scanner) acceptTileCount(count int) bool {
	return count >= s.opts.Threshold && count < maxTiles && count&(count-1) == 0
}
