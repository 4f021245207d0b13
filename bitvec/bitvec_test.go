package bitvec_test

import (
	"fmt"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/ecmurnane/noaadata/bitvec"
)

func TestPacker(t *testing.T) {
	type F struct {
		Value uint64
		Width int
	}

	type TC struct {
		Fields []F
		Output []byte
		Bits   int
		Mark   error
	}

	tcs := []TC{
		{
			Fields: []F{{0b_1, 1}},
			Output: []byte{0b_1000_0000},
			Bits:   1,
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{0b_101, 3}, {0b_01, 2}},
			Output: []byte{0b_1010_1000},
			Bits:   5,
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{0b_0101_1010, 8}},
			Output: []byte{0b_0101_1010},
			Bits:   8,
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{0b_111111, 6}, {0b_000000, 6}, {0b_11, 2}},
			Output: []byte{0b_1111_1100, 0b_0000_1100},
			Bits:   14,
			Mark:   oops.New("unexpected"),
		},
		{
			// Field spanning three bytes.
			Fields: []F{{0b_1, 1}, {0x7FFF, 16}},
			Output: []byte{0b_1011_1111, 0b_1111_1111, 0b_1000_0000},
			Bits:   17,
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{^uint64(0), 64}},
			Output: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			Bits:   64,
			Mark:   oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]", i), func(t *testing.T) {
			p := &bitvec.Packer{}

			for _, f := range tc.Fields {
				err := p.Append(f.Value, f.Width)
				require.NoError(t, err, tc.Mark)
			}

			require.Equal(t, tc.Bits, p.Len(), tc.Mark)
			require.Equal(t, tc.Output, p.Finish(), tc.Mark)
		})
	}
}

func TestPackerRange(t *testing.T) {
	type TC struct {
		Value uint64
		Width int
		Mark  error
	}

	tcs := []TC{
		{
			Value: 0b_10,
			Width: 1,
			Mark:  oops.New("unexpected"),
		},
		{
			Value: 256,
			Width: 8,
			Mark:  oops.New("unexpected"),
		},
		{
			Value: 0,
			Width: 0,
			Mark:  oops.New("unexpected"),
		},
		{
			Value: 0,
			Width: 65,
			Mark:  oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]", i), func(t *testing.T) {
			p := &bitvec.Packer{}

			err := p.Append(tc.Value, tc.Width)
			require.Error(t, err, tc.Mark)
			require.True(t, bitvec.ErrRange.Has(err), tc.Mark)
			require.Equal(t, 0, p.Len(), tc.Mark)
		})
	}

	t.Run("max width value", func(t *testing.T) {
		p := &bitvec.Packer{}

		// 2^width - 1 always fits.
		err := p.Append((1<<8)-1, 8)
		require.NoError(t, err)
	})
}

func TestPackerFinish(t *testing.T) {
	p := &bitvec.Packer{}

	err := p.Append(0b_1, 1)
	require.NoError(t, err)

	require.Equal(t, []byte{0b_1000_0000}, p.Finish())

	err = p.Append(0b_1, 1)
	require.Error(t, err)

	p.Reset()

	err = p.Append(0b_11, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0b_1100_0000}, p.Finish())
}

func TestReader(t *testing.T) {
	type F struct {
		Width int
		Value uint64
	}

	type TC struct {
		Input  []byte
		Fields []F
		Mark   error
	}

	tcs := []TC{
		{
			Input:  []byte{0b_1010_1000},
			Fields: []F{{3, 0b_101}, {2, 0b_01}},
			Mark:   oops.New("unexpected"),
		},
		{
			Input:  []byte{0b_1111_1100, 0b_0000_1100},
			Fields: []F{{6, 0b_111111}, {6, 0b_000000}, {2, 0b_11}},
			Mark:   oops.New("unexpected"),
		},
		{
			Input:  []byte{0b_1011_1111, 0b_1111_1111, 0b_1000_0000},
			Fields: []F{{1, 0b_1}, {16, 0x7FFF}},
			Mark:   oops.New("unexpected"),
		},
		{
			Input:  []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			Fields: []F{{64, ^uint64(0)}},
			Mark:   oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]", i), func(t *testing.T) {
			r := bitvec.NewReader(tc.Input)

			total := 0
			for _, f := range tc.Fields {
				v, err := r.Read(f.Width)
				require.NoError(t, err, tc.Mark)
				require.Equal(t, f.Value, v, tc.Mark)

				total += f.Width
				require.Equal(t, len(tc.Input)*8-total, r.Remaining(), tc.Mark)
			}
		})
	}
}

func TestReaderTruncated(t *testing.T) {
	r := bitvec.NewReader([]byte{0b_1010_0000})

	_, err := r.Read(6)
	require.NoError(t, err)

	_, err = r.Read(3)
	require.Error(t, err)
	require.True(t, bitvec.ErrTruncated.Has(err))

	// The cursor does not advance on failure.
	require.Equal(t, 2, r.Remaining())
	require.False(t, r.AtEnd())

	v, err := r.Read(2)
	require.NoError(t, err)
	require.Equal(t, uint64(0b_00), v)
	require.True(t, r.AtEnd())
}

func TestReaderBits(t *testing.T) {
	r, err := bitvec.NewReaderBits([]byte{0b_1010_0000}, 3)
	require.NoError(t, err)

	require.Equal(t, 3, r.Remaining())

	_, err = r.Read(4)
	require.Error(t, err)
	require.True(t, bitvec.ErrTruncated.Has(err))

	v, err := r.Read(3)
	require.NoError(t, err)
	require.Equal(t, uint64(0b_101), v)
	require.True(t, r.AtEnd())

	_, err = bitvec.NewReaderBits([]byte{0}, 9)
	require.Error(t, err)

	_, err = bitvec.NewReaderBits([]byte{0}, -1)
	require.Error(t, err)
}

func TestRoundtrip(t *testing.T) {
	type F struct {
		Value uint64
		Width int
	}

	type TC struct {
		Fields []F
		Mark   error
	}

	tcs := []TC{
		{
			Fields: []F{{1, 1}, {0, 1}, {1, 1}},
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{366, 10}, {63, 6}},
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{28, 5}, {23, 5}, {45, 6}},
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{76, 8}, {1, 16}, {5000, 16}, {65535, 16}},
			Mark:   oops.New("unexpected"),
		},
		{
			Fields: []F{{0x0FFF_FFFF, 28}, {0x07FF_FFFF, 27}},
			Mark:   oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]", i), func(t *testing.T) {
			p := &bitvec.Packer{}

			total := 0
			for _, f := range tc.Fields {
				err := p.Append(f.Value, f.Width)
				require.NoError(t, err, tc.Mark)

				total += f.Width
			}

			require.Equal(t, total, p.Len(), tc.Mark)

			data := p.Finish()
			require.Equal(t, (total+7)/8, len(data), tc.Mark)

			r := bitvec.NewReader(data)
			for _, f := range tc.Fields {
				v, err := r.Read(f.Width)
				require.NoError(t, err, tc.Mark)
				require.Equal(t, f.Value, v, tc.Mark)
			}

			// Only transport padding may remain.
			require.Less(t, r.Remaining(), 8, tc.Mark)
		})
	}
}
