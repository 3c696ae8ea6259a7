// Package stream provides the primitives of the node-to-node binary format.
//
// Integers are written as variable-length "vints": 7 bits per byte, least
// significant group first, high bit set on every byte but the last. Negative
// values are written as their unsigned 32-bit pattern and always take 5 bytes.
// Optional values are prefixed with a presence byte (0 or 1). Strings are a
// vint byte length followed by UTF-8 bytes.
//
// Readers never guess: short input yields ErrTruncated and out-of-range bytes
// yield ErrMalformed.
package stream
