package codec

import (
	"math"

	"github.com/zeebo/errs"

	"github.com/ecmurnane/noaadata/bitvec"
	"github.com/ecmurnane/noaadata/schema"
)

var (
	Error = errs.Class("codec")

	// ErrRange and ErrTruncated are the bit layer's classes. Pointers,
	// not copies: errs matches classes by identity, so a copied class
	// would never match the errors bitvec creates.
	ErrRange     = &bitvec.ErrRange
	ErrTruncated = &bitvec.ErrTruncated

	ErrMissingField = errs.Class("missing field")
	ErrConflict     = errs.Class("conflicting value")
	ErrTypeMismatch = errs.Class("type mismatch")
)

// Codec encodes and decodes one message layout. Build it once with New
// and share it; it is read-only afterwards.
type Codec struct {
	st     *schema.Struct
	fields []schema.Flat
	bits   int
}

// New flattens and validates the descriptor up front so the per-call
// paths never re-walk the include tree.
func New(st *schema.Struct) (c *Codec, err error) {
	fields, err := st.Flatten()
	if err != nil {
		return nil, Error.Wrap(err)
	}

	bits := 0
	for _, fl := range fields {
		bits += fl.Field.Bits
	}

	return &Codec{
		st:     st,
		fields: fields,
		bits:   bits,
	}, nil
}

// Name returns the descriptor's name.
func (c *Codec) Name() string {
	return c.st.Name
}

// BitLength returns the exact wire width in bits.
func (c *Codec) BitLength() int {
	return c.bits
}

// Fields returns the flattened layout in wire order. Callers must
// treat it as read-only.
func (c *Codec) Fields() []schema.Flat {
	return c.fields
}

// TestParams returns the mapping built from every field's declared
// test value, the conformance vector a round-trip must reproduce.
func (c *Codec) TestParams() Values {
	values := make(Values, len(c.fields))

	for _, fl := range c.fields {
		if fl.Field.Test == nil {
			continue
		}

		switch fl.Field.Kind {
		case schema.Uint:
			values[fl.Name] = Uint(uint64(*fl.Field.Test))
		case schema.Int:
			values[fl.Name] = Int(*fl.Field.Test)
		}
	}

	return values
}

// Encode packs values into the message bitstream. The result is
// exactly BitLength bits, zero padded to the byte boundary.
func (c *Codec) Encode(values Values) (data []byte, err error) {
	defer Error.WrapP(&err)

	p := &bitvec.Packer{}

	for _, fl := range c.fields {
		raw, err := c.resolve(fl, values)
		if err != nil {
			return nil, err
		}

		err = p.Append(raw, fl.Field.Bits)
		if err != nil {
			return nil, err
		}
	}

	return p.Finish(), nil
}

// resolve produces the raw bits for one field from the caller's
// values, applying the required-constant and sentinel-default rules.
func (c *Codec) resolve(fl schema.Flat, values Values) (raw uint64, err error) {
	f := fl.Field

	if f.Required != nil {
		// A matching caller value is tolerated; a different one is
		// rejected rather than overridden, to catch caller bugs.
		if v, ok := values[fl.Name]; ok && !v.equals(*f.Required) {
			return 0, ErrConflict.New(
				"field %q: got=%s want=%d", fl.Name, v, *f.Required,
			)
		}

		return truncate(*f.Required, f.Bits), nil
	}

	v, ok := values[fl.Name]
	if !ok || v.IsUnavailable() {
		if f.Unavailable == nil {
			return 0, ErrMissingField.New("field %q", fl.Name)
		}

		return truncate(*f.Unavailable, f.Bits), nil
	}

	if f.Unavailable != nil && v.equals(*f.Unavailable) {
		return truncate(*f.Unavailable, f.Bits), nil
	}

	switch f.Kind {
	case schema.Uint:
		if v.neg {
			return 0, ErrRange.New("field %q: value=%s", fl.Name, v)
		}

		min, max := f.UintBounds()
		if v.u < min || v.u > max {
			return 0, ErrRange.New(
				"field %q: value=%d min=%d max=%d", fl.Name, v.u, min, max,
			)
		}

		return v.u, nil
	case schema.Int:
		if !v.neg && v.u > math.MaxInt64 {
			return 0, ErrRange.New("field %q: value=%s", fl.Name, v)
		}

		i := v.Int()
		min, max := f.IntBounds()
		if i < min || i > max {
			return 0, ErrRange.New(
				"field %q: value=%d min=%d max=%d", fl.Name, i, min, max,
			)
		}

		return truncate(i, f.Bits), nil
	}

	return 0, Error.New("field %q: unknown kind=%d", fl.Name, f.Kind)
}

// Decoded is the result of one decode call.
type Decoded struct {
	Values Values

	// Trailing counts the bits beyond the described layout. Transport
	// padding is expected, so this is a warning for the caller to
	// surface, not an error.
	Trailing int
}

// Decode unpacks a received bitstream into its field values.
func (c *Codec) Decode(data []byte) (*Decoded, error) {
	return c.decode(bitvec.NewReader(data))
}

// DecodeBits decodes a stream whose exact bit count is known to be
// smaller than its padded byte length.
func (c *Codec) DecodeBits(data []byte, bits int) (*Decoded, error) {
	r, err := bitvec.NewReaderBits(data, bits)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return c.decode(r)
}

func (c *Codec) decode(r *bitvec.Reader) (_ *Decoded, err error) {
	defer Error.WrapP(&err)

	values := make(Values, len(c.fields))

	for _, fl := range c.fields {
		raw, err := r.Read(fl.Field.Bits)
		if err != nil {
			if ErrTruncated.Has(err) {
				return nil, ErrTruncated.New(
					"field %q: need=%d remaining=%d",
					fl.Name, fl.Field.Bits, r.Remaining(),
				)
			}

			return nil, err
		}

		v, err := interpret(fl, raw)
		if err != nil {
			return nil, err
		}

		values[fl.Name] = v
	}

	return &Decoded{
		Values:   values,
		Trailing: r.Remaining(),
	}, nil
}

// interpret applies the required, sentinel, and range rules to one
// read field.
func interpret(fl schema.Flat, raw uint64) (Value, error) {
	f := fl.Field

	var v Value
	switch f.Kind {
	case schema.Uint:
		v = Uint(raw)
	case schema.Int:
		v = Int(signExtend(raw, f.Bits))
	default:
		return Value{}, Error.New("field %q: unknown kind=%d", fl.Name, f.Kind)
	}

	if f.Required != nil {
		// Checked before anything else: a mismatch means the stream
		// belongs to a different message type, not that it is corrupt.
		if !v.equals(*f.Required) {
			return Value{}, ErrTypeMismatch.New(
				"field %q: got=%s want=%d", fl.Name, v, *f.Required,
			)
		}

		return v, nil
	}

	if f.Unavailable != nil && v.equals(*f.Unavailable) {
		return Unavailable(), nil
	}

	switch f.Kind {
	case schema.Uint:
		min, max := f.UintBounds()
		if v.u < min || v.u > max {
			return Value{}, ErrRange.New(
				"field %q: value=%d min=%d max=%d", fl.Name, v.u, min, max,
			)
		}
	case schema.Int:
		i := v.Int()
		min, max := f.IntBounds()
		if i < min || i > max {
			return Value{}, ErrRange.New(
				"field %q: value=%d min=%d max=%d", fl.Name, i, min, max,
			)
		}
	}

	return v, nil
}

// truncate returns the low bits of v's two's complement form.
func truncate(v int64, bits int) uint64 {
	return uint64(v) & mask(bits)
}

// signExtend interprets the low bits of raw as a two's complement
// integer.
func signExtend(raw uint64, bits int) int64 {
	if bits < 64 && raw>>uint(bits-1)&1 == 1 {
		return int64(raw | ^mask(bits))
	}

	return int64(raw)
}

func mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}

	return 1<<uint(bits) - 1
}
