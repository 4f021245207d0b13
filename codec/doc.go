// Package codec encodes and decodes AIS binary messages against a
// schema.Struct descriptor.
//
// A Codec is built once per descriptor and is safe for concurrent use;
// each call owns its own bit packer or reader. Encode walks the
// flattened layout in wire order, resolves each field's value, checks
// it against the field's range and sentinel rules, and packs it.
// Decode is the mirror traversal.
//
// Error classes partition the failure modes the way callers need to
// react to them:
//
//	ErrMissingField  encode input lacks a value with no sentinel default
//	ErrConflict      encode input contradicts a required constant
//	ErrRange         a value is outside the field's valid range
//	ErrTruncated     decode ran out of bits mid-field; corrupt input
//	ErrTypeMismatch  a required constant decoded differently; the
//	                 bitstream belongs to another message type and may
//	                 be retried against a different descriptor
//
// Bits beyond the described layout are tolerated on decode and
// reported via Decoded.Trailing, since transports commonly pad.
package codec
