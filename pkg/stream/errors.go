package stream

import (
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned when the input ends before a value is complete.
var ErrTruncated = fmt.Errorf("stream truncated: %w", io.ErrUnexpectedEOF)

// ErrMalformed is returned when the input holds bytes no writer produces.
var ErrMalformed = errors.New("malformed stream")

// ErrOutOfRange is returned when a value does not fit a 32-bit vint.
var ErrOutOfRange = errors.New("value out of 32-bit range")
