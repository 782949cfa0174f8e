package compression

import "github.com/retroenv/retrogolib/log"

const (
	// MaxOutputSize is the largest output a stream may produce.
	MaxOutputSize = 0x10000

	// maxLoopCount is the number of consecutive operations that may leave the
	// read cursor unchanged before the stream is considered to loop forever.
	maxLoopCount = 0x100
)

// Result is the output of a successful decompression.
type Result struct {
	Data      []byte // decompressed bytes
	BytesRead int    // distance between the start offset and the final read cursor
}

// Decompressor decodes a single compressed stream. It is bound to a source
// buffer and a start offset by New and can be used exactly once.
//
// Errors are returned as the unwrapped package errors, decoding at arbitrary
// offsets of a ROM while scanning must not allocate on the failure path.
type Decompressor struct {
	src []byte
	dst []byte

	startIndex int // lower bound for input backrefs
	readIndex  int // next byte to read

	oldIndex         int // read cursor to restore when the input backref ends
	backrefRemaining int // checked reads left in the input backref

	prevIndex int // read cursor after the previous operation
	loopCount int // consecutive operations without cursor movement

	err    error // sticky read error
	used   bool
	logger *log.Logger // optional operation trace
}

// New returns a decompressor that reads the stream starting at offset of src.
// The caller is responsible for passing an offset inside of src, reads outside
// of it fail with ErrUnexpectedEnd.
func New(src []byte, offset int) *Decompressor {
	return &Decompressor{
		src:        src,
		startIndex: offset,
		readIndex:  offset,
	}
}

// WithLogger enables tracing of every decoded operation. Scans leave the
// logger unset.
func (d *Decompressor) WithLogger(logger *log.Logger) *Decompressor {
	d.logger = logger
	return d
}

// Decompress decodes the stream until the end marker and returns the output.
// The first error aborts decoding and the partial output is discarded.
func (d *Decompressor) Decompress() (Result, error) {
	if d.used {
		return Result{}, ErrAlreadyUsed
	}
	d.used = true

	for {
		op := decodeOperation(d.read(), d)
		if d.err != nil {
			return Result{}, d.err
		}
		if d.logger != nil {
			d.logger.Trace("Operation", log.Stringer("operation", op), log.Int("output", len(d.dst)))
		}

		if _, ok := op.(Exit); ok {
			break
		}

		if err := d.execute(op); err != nil {
			return Result{}, err
		}
		if err := d.checkProgress(); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Data:      d.dst,
		BytesRead: d.readIndex - d.startIndex,
	}, nil
}

// execute applies a decoded operation to the output.
func (d *Decompressor) execute(op Operation) error {
	switch o := op.(type) {
	case CopySimple:
		d.copySimple(o.Count)
	case CopyNibbleFixed:
		d.copyNibbleFixed(o)
	case CopyDoubled:
		d.copyDoubled(o.Count)
	case CopyInterleaved:
		d.copyInterleaved(o.Count, o.FixedValue, o.FixedFirst)
	case CopyBackread:
		if err := d.copyBackread(o.Count, o.Back); err != nil {
			return err
		}
	case RepeatValue:
		d.repeatValue(o.Count, o.Value)
	case StartBackref:
		if err := d.startBackref(o.Count, o.Back); err != nil {
			return err
		}
	case Exit:
	}
	return d.err
}

// checkProgress enforces the output size limit and detects streams whose
// read cursor stops moving.
func (d *Decompressor) checkProgress() error {
	if len(d.dst) > MaxOutputSize {
		return ErrMaxSizeExceeded
	}

	if d.prevIndex == d.readIndex {
		d.loopCount++
		if d.loopCount > maxLoopCount {
			return ErrLoopDetected
		}
	} else {
		d.loopCount = 0
	}
	d.prevIndex = d.readIndex
	return nil
}

func (d *Decompressor) copySimple(count int) {
	for range count + 1 {
		d.dst = append(d.dst, d.read())
	}
}

func (d *Decompressor) copyDoubled(count int) {
	for range count + 1 {
		value := d.read()
		d.dst = append(d.dst, value, value)
	}
}

// copyNibbleFixed writes count+1 bytes, or count+2 if a seed nibble is set.
// Each input byte supplies the variable nibble of two output bytes, high
// nibble first.
func (d *Decompressor) copyNibbleFixed(o CopyNibbleFixed) {
	count := o.Count
	current, pending := o.Seed, o.HasSeed
	if o.HasSeed {
		count++
	}

	for range count + 1 {
		var nibble byte
		if pending {
			nibble = current & 0x0f
			pending = false
		} else {
			current = d.read()
			pending = true
			nibble = current >> 4
		}

		if o.FixedPos == NibbleUpper {
			d.dst = append(d.dst, o.Fixed<<4|nibble)
		} else {
			d.dst = append(d.dst, o.Fixed&0x0f|nibble<<4)
		}
	}
}

func (d *Decompressor) copyInterleaved(count int, fixedValue byte, fixedFirst bool) {
	for range count + 1 {
		if fixedFirst {
			d.dst = append(d.dst, fixedValue, d.read())
		} else {
			d.dst = append(d.dst, d.read(), fixedValue)
		}
	}
}

// copyBackread copies count+1 bytes starting back bytes before the end of the
// output. Source and destination may overlap, which repeats the last back
// bytes.
func (d *Decompressor) copyBackread(count, back int) error {
	if back == 0 || back > len(d.dst) {
		return ErrInvalidOperation
	}

	for range count + 1 {
		d.dst = append(d.dst, d.dst[len(d.dst)-back])
	}

	d.checkBackrefEnd()
	return nil
}

func (d *Decompressor) repeatValue(count int, value byte) {
	for range count {
		d.dst = append(d.dst, value)
	}

	d.checkBackrefEnd()
}
