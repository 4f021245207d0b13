package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecmurnane/noaadata/codec"
	"github.com/ecmurnane/noaadata/whale"
)

func TestReadValues(t *testing.T) {
	values, err := readValues(strings.NewReader(`
UserID: 1193046
longitude: -73297968
timetoexpire: ~
`))
	require.NoError(t, err)

	require.Equal(t, codec.Values{
		"UserID":       codec.Uint(1193046),
		"longitude":    codec.Int(-73297968),
		"timetoexpire": codec.Unavailable(),
	}, values)
}

func TestReadValuesFullRange(t *testing.T) {
	// Unsigned 64 bit fields cover values past MaxInt64; parsing must
	// not squeeze them through an int64.
	values, err := readValues(strings.NewReader(`
high: 18446744073709551615
low: 0
`))
	require.NoError(t, err)

	require.Equal(t, codec.Values{
		"high": codec.Uint(^uint64(0)),
		"low":  codec.Uint(0),
	}, values)
}

func TestReadValuesInvalid(t *testing.T) {
	_, err := readValues(strings.NewReader(`UserID: "not a number"`))
	require.Error(t, err)
}

func TestWriteValuesRoundtrip(t *testing.T) {
	c, err := whale.New()
	require.NoError(t, err)

	in := c.TestParams()
	in["radius"] = codec.Unavailable()

	var buf bytes.Buffer
	require.NoError(t, writeValues(&buf, c, in))

	// Wire order is preserved.
	require.True(t, strings.Index(buf.String(), "MessageID") < strings.Index(buf.String(), "radius"))

	out, err := readValues(&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}
