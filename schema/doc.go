// Package schema holds the static field-layout descriptors for AIS
// binary messages.
//
// A message layout is a Struct: an ordered list of fixed-width integer
// Fields and included sub-Structs. Inclusion is pure composition; the
// included layout is inlined at that position in wire order. Flatten
// merges the tree into a single ordered namespace of fields, mangling
// included field names with the include alias unless the include is
// marked no-mangle:
//
//	include "state" of sotdma   -> state_syncstate, state_slottimeout
//	include "hdr" of msghdr (no-mangle) -> MessageID, RepeatIndicator
//
// A Field may carry a required constant (the message type tag checked
// on decode), an unavailable sentinel (a reserved in-range value that
// means "no data"), and a valid range narrower than the width implies.
//
// Descriptors are built once, either in Go or from the XML dialect via
// Load, and are immutable afterwards; they may be shared freely across
// concurrent encode and decode calls.
package schema
