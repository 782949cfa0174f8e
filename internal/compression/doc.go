// Package compression implements the decompressor for the graphics data
// compression scheme used by the game engine.
//
// # Stream Format
//
// A compressed stream is a sequence of operations terminated by 0xFF. The
// leading byte of every operation selects its shape by numeric range:
//
//	0x00-0x3F  copy op+1 literal bytes
//	0x40-0x4F  copy nibbles with a fixed other half
//	0x50-0x5F  copy literal bytes, each written twice
//	0x60-0x7F  copy literal bytes interleaved with a fixed byte
//	0x80-0xBF  copy from the output, short form
//	0xC0-0xDF  copy from the output, long form
//	0xE0-0xEF  repeat a value, long form
//	0xF0-0xF7  repeat a value, short form
//	0xF8-0xFB  replay earlier input, long form
//	0xFC-0xFE  replay earlier input, short form
//	0xFF       end of stream
//
// # Reads
//
// Bytes are pulled from the source with two primitives. A raw read only
// advances the cursor. A checked read additionally counts down an active
// input replay and restores the cursor once the replay is exhausted. Which
// primitive is used for which operand is part of the format and must not be
// changed.
//
// # Input Replay
//
// The replay operations move the read cursor back into the already consumed
// part of the compressed stream for a bounded number of checked reads. This
// lets a stream reuse a run of its own operations and literals. Only one
// replay can be active at a time, a new one replaces the previous one.
//
// # Usage
//
//	result, err := compression.New(rom, 0x1c8000).Decompress()
//	if err != nil {
//		return fmt.Errorf("decompressing tiles: %w", err)
//	}
//	tiles := result.Data
//
// A Decompressor owns its output and only reads the source, so any number of
// decompressors can run concurrently over the same source buffer.
package compression
