package codec

import "strconv"

// Value is one decoded or to-be-encoded field value: an unsigned
// integer, a signed integer, or the explicit "no data" marker. The
// marker is how callers tell a sentinel meaning absent apart from a
// literal reading, which are indistinguishable at the bit level.
type Value struct {
	u    uint64
	neg  bool
	none bool
}

// Uint returns a Value holding an unsigned integer.
func Uint(v uint64) Value {
	return Value{u: v}
}

// Int returns a Value holding a signed integer.
func Int(v int64) Value {
	if v < 0 {
		// Magnitude; correct even for MinInt64 where -v wraps.
		return Value{u: uint64(-v), neg: true}
	}

	return Value{u: uint64(v)}
}

// Unavailable returns the explicit "no data" marker.
func Unavailable() Value {
	return Value{none: true}
}

// IsUnavailable reports whether the value is the "no data" marker.
func (v Value) IsUnavailable() bool {
	return v.none
}

// Uint returns the value as an unsigned integer. Negative and
// unavailable values read as zero.
func (v Value) Uint() uint64 {
	if v.neg || v.none {
		return 0
	}

	return v.u
}

// Int returns the value as a signed integer. Unavailable values read
// as zero.
func (v Value) Int() int64 {
	if v.none {
		return 0
	}
	if v.neg {
		return -int64(v.u)
	}

	return int64(v.u)
}

func (v Value) String() string {
	if v.none {
		return "n/a"
	}
	if v.neg {
		return strconv.FormatInt(v.Int(), 10)
	}

	return strconv.FormatUint(v.u, 10)
}

// equals reports whether the value is the number c.
func (v Value) equals(c int64) bool {
	if v.none {
		return false
	}
	if v.neg {
		return v.Int() == c
	}

	return c >= 0 && v.u == uint64(c)
}

// Values is the flattened field-name to value mapping a message
// encodes from and decodes to.
type Values map[string]Value
