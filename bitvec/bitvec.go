package bitvec

import (
	"github.com/zeebo/errs"
)

var (
	Error = errs.Class("bitvec")

	// ErrRange is returned when a value does not fit its field width.
	ErrRange = errs.Class("value out of range")

	// ErrTruncated is returned when a read runs past the end of the
	// stream.
	ErrTruncated = errs.Class("truncated message")
)

// MaxWidth is the widest field either side supports.
const MaxWidth = 64

// Packer serializes unsigned integer fields into a contiguous
// bitstream, most significant bit first, with no padding between
// fields.
//
// The zero value is ready for use.
type Packer struct {
	buf      []byte
	bits     int
	finished bool
}

// Append extends the stream by exactly width bits holding value.
func (p *Packer) Append(value uint64, width int) (err error) {
	if p.finished {
		return Error.New("append after finish")
	}
	if width < 1 || width > MaxWidth {
		return ErrRange.New("invalid width: width=%d", width)
	}
	if width < MaxWidth && value>>uint(width) != 0 {
		return ErrRange.New("value does not fit: value=%d width=%d", value, width)
	}

	for i := width - 1; i >= 0; i-- {
		if p.bits%8 == 0 {
			p.buf = append(p.buf, 0)
		}
		if value>>uint(i)&1 == 1 {
			p.buf[p.bits/8] |= 0b_1000_0000 >> uint(p.bits%8)
		}
		p.bits++
	}

	return nil
}

// Len returns the number of bits accumulated so far.
func (p *Packer) Len() int {
	return p.bits
}

// Finish returns the accumulated stream padded to a byte boundary with
// zero bits. The packer rejects further appends until Reset.
func (p *Packer) Finish() []byte {
	p.finished = true

	return p.buf
}

// Reset returns the packer to its initial empty state.
func (p *Packer) Reset() {
	p.buf = nil
	p.bits = 0
	p.finished = false
}

// Reader is a cursor over an immutable bitstream.
type Reader struct {
	buf  []byte
	bits int
	off  int
}

// NewReader returns a reader over all bits of data.
func NewReader(data []byte) *Reader {
	return &Reader{
		buf:  data,
		bits: len(data) * 8,
	}
}

// NewReaderBits returns a reader bounded at bits, which must not
// exceed the bits present in data. It is used when the transport
// delivers a bit count smaller than the padded byte length.
func NewReaderBits(data []byte, bits int) (*Reader, error) {
	if bits < 0 || bits > len(data)*8 {
		return nil, Error.New("invalid bit bound: bits=%d len=%d", bits, len(data))
	}

	return &Reader{
		buf:  data,
		bits: bits,
	}, nil
}

// Read extracts the next width bits as an unsigned integer and
// advances the cursor.
func (r *Reader) Read(width int) (value uint64, err error) {
	if width < 1 || width > MaxWidth {
		return 0, ErrRange.New("invalid width: width=%d", width)
	}
	if width > r.bits-r.off {
		return 0, ErrTruncated.New("need=%d remaining=%d", width, r.bits-r.off)
	}

	for i := 0; i < width; i++ {
		value <<= 1
		if r.buf[r.off/8]>>uint(7-r.off%8)&1 == 1 {
			value |= 1
		}
		r.off++
	}

	return value, nil
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return r.bits - r.off
}

// AtEnd returns true iff no bits remain.
func (r *Reader) AtEnd() bool {
	return r.off == r.bits
}
