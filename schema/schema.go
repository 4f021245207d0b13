package schema

import (
	"github.com/zeebo/errs"
)

var Error = errs.Class("schema")

// Kind is the interpretation of a field's bits.
type Kind int

const (
	// Uint is an unsigned integer.
	Uint Kind = iota

	// Int is a signed integer in two's complement within the field
	// width.
	Int
)

func (k Kind) String() string {
	switch k {
	case Uint:
		return "uint"
	case Int:
		return "int"
	}

	return "unknown"
}

// Field describes one fixed-width bit field.
type Field struct {
	Name string
	Bits int
	Kind Kind

	// Required pins the field to a constant. Encode always emits it
	// and decode rejects any other value as a type mismatch.
	Required *int64

	// Unavailable is the reserved value meaning "no data".
	Unavailable *int64

	// Min and Max narrow the valid range below what Bits allows.
	// The unavailable sentinel is permitted even when outside them.
	Min *int64
	Max *int64

	// Test is the declared conformance test value.
	Test *int64

	// Scale is the original schema's fixed-point divisor (for
	// example degrees*600000 positions). Documentation only; the
	// codec always carries the raw integer.
	Scale int64

	Units       string
	Description string
}

// UintBounds returns the valid range for a Uint field.
func (f *Field) UintBounds() (min, max uint64) {
	max = maxUint(f.Bits)
	if f.Min != nil && *f.Min > 0 {
		min = uint64(*f.Min)
	}
	if f.Max != nil {
		max = uint64(*f.Max)
	}

	return min, max
}

// IntBounds returns the valid range for an Int field.
func (f *Field) IntBounds() (min, max int64) {
	min, max = minInt(f.Bits), maxInt(f.Bits)
	if f.Min != nil {
		min = *f.Min
	}
	if f.Max != nil {
		max = *f.Max
	}

	return min, max
}

func (f *Field) validate() (err error) {
	if f.Name == "" {
		return Error.New("unnamed field")
	}
	if f.Bits < 1 || f.Bits > 64 {
		return Error.New("invalid width: field=%q width=%d", f.Name, f.Bits)
	}
	if f.Kind != Uint && f.Kind != Int {
		return Error.New("invalid kind: field=%q kind=%d", f.Name, f.Kind)
	}

	for _, c := range []struct {
		name  string
		value *int64
	}{
		{"required", f.Required},
		{"unavailable", f.Unavailable},
		{"min", f.Min},
		{"max", f.Max},
		{"testvalue", f.Test},
	} {
		if c.value == nil {
			continue
		}
		if !f.representable(*c.value) {
			return Error.New(
				"constant does not fit: field=%q %s=%d width=%d kind=%s",
				f.Name, c.name, *c.value, f.Bits, f.Kind,
			)
		}
	}

	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return Error.New(
			"inverted range: field=%q min=%d max=%d",
			f.Name, *f.Min, *f.Max,
		)
	}

	return nil
}

// representable reports whether v fits the field's width and kind.
func (f *Field) representable(v int64) bool {
	switch f.Kind {
	case Uint:
		if v < 0 {
			return false
		}

		return f.Bits == 64 || uint64(v) <= maxUint(f.Bits)
	case Int:
		return v >= minInt(f.Bits) && v <= maxInt(f.Bits)
	}

	return false
}

// Include embeds a reusable layout under a local alias.
type Include struct {
	Name   string
	Struct *Struct

	// NoMangle keeps the included field names unprefixed in the
	// flattened namespace. Used for headers whose fields must stay
	// addressable by their own names.
	NoMangle bool
}

// Member is exactly one of a Field or an Include.
type Member struct {
	Field   *Field
	Include *Include
}

// Struct is an ordered field layout; member order is wire order.
type Struct struct {
	Name    string
	Members []Member
}

// BitLength returns the total wire width in bits.
func (s *Struct) BitLength() int {
	total := 0
	for _, m := range s.Members {
		switch {
		case m.Field != nil:
			total += m.Field.Bits
		case m.Include != nil && m.Include.Struct != nil:
			total += m.Include.Struct.BitLength()
		}
	}

	return total
}

// Flat is one entry of a flattened layout: the field together with its
// name in the message-wide namespace.
type Flat struct {
	Name  string
	Field *Field
}

// Flatten inlines all includes in wire order and validates the layout:
// every field well formed, every flattened name unique.
func (s *Struct) Flatten() (flats []Flat, err error) {
	seen := map[string]bool{}

	err = s.flatten("", &flats, seen)
	if err != nil {
		return nil, err
	}

	return flats, nil
}

func (s *Struct) flatten(prefix string, flats *[]Flat, seen map[string]bool) (err error) {
	for _, m := range s.Members {
		switch {
		case m.Field != nil:
			err = m.Field.validate()
			if err != nil {
				return err
			}

			name := prefix + m.Field.Name
			if seen[name] {
				return Error.New("duplicate field: struct=%q name=%q", s.Name, name)
			}
			seen[name] = true

			*flats = append(*flats, Flat{
				Name:  name,
				Field: m.Field,
			})
		case m.Include != nil:
			if m.Include.Struct == nil {
				return Error.New("include without struct: struct=%q include=%q", s.Name, m.Include.Name)
			}

			sub := prefix
			if !m.Include.NoMangle {
				if m.Include.Name == "" {
					return Error.New("unnamed mangled include: struct=%q", s.Name)
				}

				sub = prefix + m.Include.Name + "_"
			}

			err = m.Include.Struct.flatten(sub, flats, seen)
			if err != nil {
				return err
			}
		default:
			return Error.New("empty member: struct=%q", s.Name)
		}
	}

	return nil
}

func maxUint(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}

	return 1<<uint(bits) - 1
}

func maxInt(bits int) int64 {
	return int64(maxUint(bits - 1))
}

func minInt(bits int) int64 {
	return -1 << uint(bits-1)
}
