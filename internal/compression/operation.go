package compression

import "fmt"

// NibblePos selects which half of an output byte is fixed.
type NibblePos int

// Nibble positions.
const (
	NibbleUpper NibblePos = iota
	NibbleLower
)

func (p NibblePos) String() string {
	if p == NibbleUpper {
		return "upper"
	}
	return "lower"
}

// Operation is a single decoded operation of a compressed stream.
// The set of implementations is closed, see the types below.
type Operation interface {
	fmt.Stringer
	operation()
}

// CopySimple copies Count+1 bytes from the input.
type CopySimple struct {
	Count int
}

// CopyNibbleFixed writes bytes that have one fixed nibble, the other nibble
// is streamed from the input, two nibbles per input byte.
type CopyNibbleFixed struct {
	Count    int
	Fixed    byte
	FixedPos NibblePos
	Seed     byte // first variable nibble, only valid if HasSeed is set
	HasSeed  bool
}

// CopyDoubled copies Count+1 bytes from the input, writing each one twice.
type CopyDoubled struct {
	Count int
}

// CopyInterleaved copies Count+1 bytes from the input, each one paired with
// FixedValue.
type CopyInterleaved struct {
	Count      int
	FixedValue byte
	FixedFirst bool
}

// CopyBackread copies Count+1 bytes from Back bytes before the end of the
// output.
type CopyBackread struct {
	Count int
	Back  int
}

// RepeatValue writes Value Count times.
type RepeatValue struct {
	Count int
	Value byte
}

// StartBackref moves the read cursor Back bytes back into the input for
// the next Count checked reads.
type StartBackref struct {
	Count int
	Back  int
}

// Exit ends the stream.
type Exit struct{}

func (CopySimple) operation()      {}
func (CopyNibbleFixed) operation() {}
func (CopyDoubled) operation()     {}
func (CopyInterleaved) operation() {}
func (CopyBackread) operation()    {}
func (RepeatValue) operation()     {}
func (StartBackref) operation()    {}
func (Exit) operation()            {}

func (o CopySimple) String() string {
	return fmt.Sprintf("CopySimple(count=%d)", o.Count)
}

func (o CopyNibbleFixed) String() string {
	if o.HasSeed {
		return fmt.Sprintf("CopyNibbleFixed(count=%d, fixed=%#x, pos=%s, seed=%#x)", o.Count, o.Fixed, o.FixedPos, o.Seed)
	}
	return fmt.Sprintf("CopyNibbleFixed(count=%d, fixed=%#x, pos=%s)", o.Count, o.Fixed, o.FixedPos)
}

func (o CopyDoubled) String() string {
	return fmt.Sprintf("CopyDoubled(count=%d)", o.Count)
}

func (o CopyInterleaved) String() string {
	return fmt.Sprintf("CopyInterleaved(count=%d, fixed=%#x, first=%t)", o.Count, o.FixedValue, o.FixedFirst)
}

func (o CopyBackread) String() string {
	return fmt.Sprintf("CopyBackread(count=%d, back=%d)", o.Count, o.Back)
}

func (o RepeatValue) String() string {
	return fmt.Sprintf("RepeatValue(count=%d, value=%#x)", o.Count, o.Value)
}

func (o StartBackref) String() string {
	return fmt.Sprintf("StartBackref(count=%d, back=%d)", o.Count, o.Back)
}

func (Exit) String() string {
	return "Exit"
}

// be16 combines two bytes into a big endian 16 bit value.
func be16(hi, lo byte) int {
	return int(hi)<<8 | int(lo)
}

// decodeOperation decodes the operation selected by the leading byte op,
// reading any operand bytes from d. The raw or checked read used for each
// operand is part of the format.
func decodeOperation(op byte, d *Decompressor) Operation {
	switch {
	case op < 0x40:
		return CopySimple{Count: int(op)}
	case op < 0x50:
		return decodeCopyNibbleFixed(op, d)
	case op < 0x60:
		return CopyDoubled{Count: int(op & 0x0f)}
	case op < 0x80:
		return CopyInterleaved{
			Count:      int(op&0x0f) + 1,
			FixedValue: d.read(),
			FixedFirst: op < 0x70,
		}
	case op < 0xc0:
		return decodeCopyBackreadSmall(op, d)
	case op < 0xe0:
		return decodeCopyBackreadLarge(op, d)
	case op < 0xf0:
		return decodeRepeatValueLarge(op, d)
	case op < 0xf8:
		return decodeRepeatValueSmall(op, d)
	case op < 0xfc:
		return decodeStartBackrefLarge(op, d)
	case op < 0xff:
		return decodeStartBackrefSmall(op, d)
	default:
		return Exit{}
	}
}

func decodeCopyNibbleFixed(op byte, d *Decompressor) Operation {
	o := CopyNibbleFixed{
		Count:    int(op&0x0f) + 1,
		FixedPos: NibbleUpper,
	}

	param := d.read()
	if param&0x10 != 0 {
		o.FixedPos = NibbleLower
	}

	if param < 0x80 {
		o.Fixed = param & 0x0f
		return o
	}

	o.Seed = param & 0x0f
	o.HasSeed = true
	if param&0x40 != 0 {
		o.Fixed = 0x0f
	}
	return o
}

func decodeCopyBackreadSmall(op byte, d *Decompressor) Operation {
	count := int(op&0x7f)/4 + 1
	back := be16(op&0x03, d.readRaw())
	return CopyBackread{Count: count, Back: back}
}

func decodeCopyBackreadLarge(op byte, d *Decompressor) Operation {
	lower := d.read()
	count := (int(op&0x1f)<<1 | int(lower>>7)) + 1
	back := be16(lower&0x7f, d.readRaw())
	return CopyBackread{Count: count, Back: back}
}

func decodeRepeatValueLarge(op byte, d *Decompressor) Operation {
	lower := d.read()
	count := be16(op&0x0f, lower) + 3
	return RepeatValue{Count: count, Value: d.readRaw()}
}

func decodeRepeatValueSmall(op byte, d *Decompressor) Operation {
	count := int(op&0x07) + 3
	return RepeatValue{Count: count, Value: d.readRaw()}
}

func decodeStartBackrefLarge(op byte, d *Decompressor) Operation {
	lower := d.readRaw()
	back := be16(lower&0x1f, d.readRaw()) + 3
	count := (int(op&0x03)<<8|int(lower))>>5 + 3
	return StartBackref{Count: count, Back: back}
}

func decodeStartBackrefSmall(op byte, d *Decompressor) Operation {
	lower := d.readRaw()
	back := int(lower&0x3f) + 2
	count := (int(op&0x01)<<8|int(lower))>>6 + 3
	return StartBackref{Count: count, Back: back}
}
