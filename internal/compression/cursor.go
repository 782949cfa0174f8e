package compression

// readRaw returns the byte at the read cursor and advances the cursor.
// Reading outside of the source sets the sticky read error and returns 0,
// the decode loop checks the error after every decode and execute step.
// The cursor can not overflow as it is always smaller than len(src) before
// being incremented.
func (d *Decompressor) readRaw() byte {
	if d.readIndex < 0 || d.readIndex >= len(d.src) {
		d.err = ErrUnexpectedEnd
		return 0
	}

	value := d.src[d.readIndex]
	d.readIndex++
	return value
}

// read is a checked read: a raw read followed by a backref expiry check.
func (d *Decompressor) read() byte {
	value := d.readRaw()
	d.checkBackrefEnd()
	return value
}

// checkBackrefEnd counts down an active input backref and moves the cursor
// back to where the backref was started once the last byte was consumed.
func (d *Decompressor) checkBackrefEnd() {
	if d.backrefRemaining == 1 {
		d.readIndex = d.oldIndex
	}
	if d.backrefRemaining > 0 {
		d.backrefRemaining--
	}
}

// startBackref redirects the next count checked reads to back bytes before
// the current read cursor. The target may not precede the stream start.
func (d *Decompressor) startBackref(count, back int) error {
	if d.readIndex < back || d.readIndex-back < d.startIndex {
		return ErrInvalidOperation
	}

	d.backrefRemaining = count
	d.oldIndex = d.readIndex
	d.readIndex -= back
	return nil
}
