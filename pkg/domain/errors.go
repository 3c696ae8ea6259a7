package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidArgument is the kind of every request-authoring error.
// Use errors.Is(err, ErrInvalidArgument) to detect it.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrMalformedRequest is returned for text input that cannot be decoded into
// a configuration: syntax errors, unknown fields, wrong value types.
var ErrMalformedRequest = errors.New("malformed request")

// ErrConfigNotFound is returned when a cache key is unknown to a store.
var ErrConfigNotFound = errors.New("config not found")

// InvalidArgumentError reports a rejected field value.
type InvalidArgumentError struct {
	Aggregation string   // Aggregation name
	Fields      []string // Offending field(s)
	Reason      string   // Human-readable message
}

func (e *InvalidArgumentError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("[%s] is invalid: [%s]", strings.Join(e.Fields, ", "), e.Aggregation)
}

// Is makes errors.Is(err, ErrInvalidArgument) true for every InvalidArgumentError.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NullArgument builds the error raised when a required field is absent.
func NullArgument(aggregation, field string) *InvalidArgumentError {
	return &InvalidArgumentError{
		Aggregation: aggregation,
		Fields:      []string{field},
		Reason:      fmt.Sprintf("[%s] must not be null: [%s]", field, aggregation),
	}
}

// DepthRange builds the error raised when minDepth exceeds maxDepth.
func DepthRange(aggregation string, minDepth, maxDepth int) *InvalidArgumentError {
	return &InvalidArgumentError{
		Aggregation: aggregation,
		Fields:      []string{FieldMinDepth, FieldMaxDepth},
		Reason: fmt.Sprintf("[%s] (%d) must not be greater than [%s] (%d)",
			FieldMinDepth, minDepth, FieldMaxDepth, maxDepth),
	}
}

// IntRange builds the error raised when an integer field does not fit the
// 32-bit range of the wire format.
func IntRange(aggregation, field string, value int) *InvalidArgumentError {
	return &InvalidArgumentError{
		Aggregation: aggregation,
		Fields:      []string{field},
		Reason: fmt.Sprintf("[%s] (%d) must be between %d and %d: [%s]",
			field, value, math.MinInt32, math.MaxInt32, aggregation),
	}
}
