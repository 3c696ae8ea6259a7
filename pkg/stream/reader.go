package stream

import (
	"fmt"
	"unicode/utf8"
)

// Reader consumes values produced by a Writer.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a reader over b. The reader does not copy b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// ReadByte consumes one raw byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrTruncated
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadBool consumes a boolean byte. Anything but 0 or 1 is malformed.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: boolean byte 0x%02x at offset %d", ErrMalformed, b, r.off-1)
	}
}

// ReadVInt consumes a vint written by WriteVInt.
func (r *Reader) ReadVInt() (int, error) {
	var u uint32
	for i := 0; i < maxVIntLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == maxVIntLen-1 && b&0xF0 != 0 {
			return 0, fmt.Errorf("%w: vint overflows 32 bits at offset %d", ErrMalformed, r.off-1)
		}
		u |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int(int32(u)), nil
		}
	}
	return 0, fmt.Errorf("%w: vint longer than %d bytes", ErrMalformed, maxVIntLen)
}

// ReadOptionalVInt consumes a presence byte and, if set, a vint.
func (r *Reader) ReadOptionalVInt() (*int, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	v, err := r.ReadVInt()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadString consumes a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.readLength()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid UTF-8 string", ErrMalformed)
	}
	return string(b), nil
}

// ReadOptionalString consumes a presence byte and, if set, a string.
func (r *Reader) ReadOptionalString() (string, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return "", err
	}
	return r.ReadString()
}

// ReadBytes consumes a length-prefixed byte slice. The result is a copy.
func (r *Reader) ReadBytes() ([]byte, error) {
	b, err := r.readLength()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func (r *Reader) readLength() ([]byte, error) {
	n, err := r.ReadVInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrMalformed, n)
	}
	if n > r.Remaining() {
		return nil, ErrTruncated
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}
