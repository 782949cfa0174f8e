package compression

import "errors"

// Decompression errors. All of them are terminal, a failed decode never
// returns partial output.
var (
	// ErrInvalidOperation is returned when a back reference would read before
	// the start of valid data, either in the output or in the input stream.
	ErrInvalidOperation = errors.New("data contained an invalid operation")
	// ErrLoopDetected is returned when the read cursor did not advance for too
	// many consecutive operations.
	ErrLoopDetected = errors.New("loop detected in decompression")
	// ErrMaxSizeExceeded is returned when the output grows beyond MaxOutputSize.
	ErrMaxSizeExceeded = errors.New("maximum size exceeded")
	// ErrUnexpectedEnd is returned when the stream tries to read past the end
	// of the source buffer.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	// ErrInvalidData is never returned by the decompressor itself. Consumers
	// that convert decompressed bytes into palettes, tiles or tile maps return
	// it when the output has the wrong shape.
	ErrInvalidData = errors.New("invalid data")
	// ErrAlreadyUsed is returned when Decompress is called a second time on
	// the same decompressor.
	ErrAlreadyUsed = errors.New("decompressor already used")
)
