// Package bitvec provides the bit-level layer for AIS binary messages.
//
// AIS application messages pack every field as a fixed-width integer,
// most significant bit first, with no alignment or padding between
// fields. A field may start and end anywhere inside a byte:
//
//	field:  |   a (6)   | b (3) |      c (10)       |
//	bits:   a a a a a a b b b c c c c c c c c c c
//	bytes:  [a a a a a a b b] [b c c c c c c c] [c c c 0 0 0 0 0]
//
// The Packer accumulates fields into such a stream and pads the final
// byte with zero bits. The Reader is a cursor over a received stream
// and extracts fields at arbitrary bit offsets.
//
// Neither type is safe for concurrent use; each encode or decode call
// is expected to own its own instance.
package bitvec
