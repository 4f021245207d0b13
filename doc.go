// Package noaadata implements schema-driven encoding and decoding of
// AIS binary application messages.
//
// Message layouts are immutable descriptors (schema), interpreted by a
// single generic codec (codec) over an unaligned MSB-first bitstream
// (bitvec). The whale detection notice, DAC 366 FID 63, ships as a
// built-in layout (whale). NMEA sentence framing and 6-bit ASCII
// armoring are outside this module; it produces and consumes the raw
// message bits.
package noaadata
