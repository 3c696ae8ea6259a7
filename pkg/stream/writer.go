package stream

import (
	"fmt"
	"math"
)

// maxVIntLen is the encoded length of any 32-bit value with the top bits set.
const maxVIntLen = 5

// Writer appends encoded values to an in-memory buffer.
// The zero value is ready to use.
type Writer struct {
	buf []byte
	err error
}

// NewWriter creates a writer with capacity hint n.
func NewWriter(n int) *Writer {
	return &Writer{buf: make([]byte, 0, n)}
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Err returns the first error recorded by a write, if any. Writes after an
// error still append, but the output is not decodable.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return err
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteByte appends a single raw byte. It never fails.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteBool appends 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

// WriteVInt appends v as a vint. Negative values take five bytes. Values
// outside the 32-bit range are not written and yield ErrOutOfRange.
func (w *Writer) WriteVInt(v int) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return w.fail(fmt.Errorf("%w: %d", ErrOutOfRange, v))
	}
	w.putVInt(uint32(int32(v)))
	return nil
}

func (w *Writer) putVInt(u uint32) {
	for u >= 0x80 {
		w.buf = append(w.buf, byte(u)|0x80)
		u >>= 7
	}
	w.buf = append(w.buf, byte(u))
}

// WriteOptionalVInt appends a presence byte followed by the vint when v is non-nil.
// An out-of-range value writes nothing.
func (w *Writer) WriteOptionalVInt(v *int) error {
	if v == nil {
		w.WriteBool(false)
		return nil
	}
	if *v < math.MinInt32 || *v > math.MaxInt32 {
		return w.fail(fmt.Errorf("%w: %d", ErrOutOfRange, *v))
	}
	w.WriteBool(true)
	return w.WriteVInt(*v)
}

// WriteString appends the byte length of s followed by its bytes.
// A length beyond the 32-bit range is recorded in Err.
func (w *Writer) WriteString(s string) {
	if w.WriteVInt(len(s)) != nil {
		return
	}
	w.buf = append(w.buf, s...)
}

// WriteOptionalString appends a presence byte followed by s when s is non-empty.
func (w *Writer) WriteOptionalString(s string) {
	if s == "" {
		w.WriteBool(false)
		return
	}
	w.WriteBool(true)
	w.WriteString(s)
}

// WriteBytes appends the length of b followed by b.
// A length beyond the 32-bit range is recorded in Err.
func (w *Writer) WriteBytes(b []byte) {
	if w.WriteVInt(len(b)) != nil {
		return
	}
	w.buf = append(w.buf, b...)
}
