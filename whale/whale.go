// Package whale declares the right-whale detection notice: an
// application-specific AIS binary message under DAC 366 (United
// States), FID 63. The layouts are plain data fed to the generic
// codec; nothing here is generated.
package whale

import (
	"math"

	"github.com/ecmurnane/noaadata/codec"
	"github.com/ecmurnane/noaadata/schema"
)

// Dac and Fid identify the message type on the wire.
const (
	Dac = 366
	Fid = 63
)

// MsgHdr is the AIS message 8 (binary broadcast) header. It is
// included no-mangle so its fields stay addressable by their own
// names.
var MsgHdr = &schema.Struct{
	Name: "msghdr",
	Members: []schema.Member{
		{Field: &schema.Field{
			Name:        "MessageID",
			Bits:        6,
			Kind:        schema.Uint,
			Required:    i64(8),
			Test:        i64(8),
			Description: "AIS message number",
		}},
		{Field: &schema.Field{
			Name:        "RepeatIndicator",
			Bits:        2,
			Kind:        schema.Uint,
			Test:        i64(1),
			Description: "How many times the message has been repeated",
		}},
		{Field: &schema.Field{
			Name:        "UserID",
			Bits:        30,
			Kind:        schema.Uint,
			Test:        i64(1193046),
			Units:       "MMSI",
			Description: "Unique identifier of the transmitting station",
		}},
		{Field: &schema.Field{
			Name:        "Spare",
			Bits:        2,
			Kind:        schema.Uint,
			Required:    i64(0),
			Test:        i64(0),
			Description: "Not used, set to zero",
		}},
	},
}

// UTCDateTime is the reusable day/hour/minute timestamp fragment.
var UTCDateTime = &schema.Struct{
	Name: "utcdatetime",
	Members: []schema.Member{
		{Field: &schema.Field{
			Name:        "day",
			Bits:        5,
			Kind:        schema.Uint,
			Min:         i64(1),
			Max:         i64(31),
			Unavailable: i64(0),
			Test:        i64(28),
			Units:       "days",
			Description: "UTC day of the month",
		}},
		{Field: &schema.Field{
			Name:        "hour",
			Bits:        5,
			Kind:        schema.Uint,
			Min:         i64(0),
			Max:         i64(23),
			Unavailable: i64(24),
			Test:        i64(23),
			Units:       "hours",
			Description: "UTC hour of the day",
		}},
		{Field: &schema.Field{
			Name:        "min",
			Bits:        6,
			Kind:        schema.Uint,
			Min:         i64(0),
			Max:         i64(59),
			Unavailable: i64(60),
			Test:        i64(45),
			Units:       "minutes",
			Description: "UTC minute of the hour",
		}},
	},
}

// Position2D is the reusable longitude/latitude fragment. Values are
// signed degrees at scale 600000, the AIS fixed-point convention; the
// unavailable sentinels are 181 and 91 degrees.
var Position2D = &schema.Struct{
	Name: "position2d",
	Members: []schema.Member{
		{Field: &schema.Field{
			Name:        "longitude",
			Bits:        28,
			Kind:        schema.Int,
			Scale:       DegreeScale,
			Unavailable: i64(108600000),
			Test:        i64(-73297968),
			Units:       "degrees*600000",
			Description: "East-west location, east positive",
		}},
		{Field: &schema.Field{
			Name:        "latitude",
			Bits:        27,
			Kind:        schema.Int,
			Scale:       DegreeScale,
			Unavailable: i64(54600000),
			Test:        i64(22454675),
			Units:       "degrees*600000",
			Description: "North-south location, north positive",
		}},
	},
}

// Notice is the whale detection notice layout: 167 bits on the wire.
var Notice = &schema.Struct{
	Name: "whalenotice",
	Members: []schema.Member{
		{Include: &schema.Include{
			Name:     "hdr",
			Struct:   MsgHdr,
			NoMangle: true,
		}},
		{Field: &schema.Field{
			Name:        "dac",
			Bits:        10,
			Kind:        schema.Uint,
			Required:    i64(Dac),
			Test:        i64(Dac),
			Description: "Designated area code",
		}},
		{Field: &schema.Field{
			Name:        "fid",
			Bits:        6,
			Kind:        schema.Uint,
			Required:    i64(Fid),
			Test:        i64(Fid),
			Description: "Functional identifier",
		}},
		{Include: &schema.Include{
			Name:     "timestamp",
			Struct:   UTCDateTime,
			NoMangle: true,
		}},
		{Field: &schema.Field{
			Name:        "stationid",
			Bits:        8,
			Kind:        schema.Uint,
			Test:        i64(76),
			Description: "Id of the monitoring station that detected the whale",
		}},
		{Include: &schema.Include{
			Name:     "position",
			Struct:   Position2D,
			NoMangle: true,
		}},
		{Field: &schema.Field{
			Name:        "timetoexpire",
			Bits:        16,
			Kind:        schema.Uint,
			Unavailable: i64(0),
			Test:        i64(1),
			Units:       "minutes",
			Description: "Minutes from the timestamp until the notice lapses",
		}},
		{Field: &schema.Field{
			Name:        "radius",
			Bits:        16,
			Kind:        schema.Uint,
			Unavailable: i64(65535),
			Test:        i64(5000),
			Units:       "meters",
			Description: "Distance from the position within which the notice applies",
		}},
	},
}

// New returns a codec for the whale notice.
func New() (*codec.Codec, error) {
	return codec.New(Notice)
}

// DegreeScale is the fixed-point divisor for position fields.
const DegreeScale = 600000

// DegreesToRaw converts decimal degrees to the raw field value.
func DegreesToRaw(deg float64) int64 {
	return int64(math.Round(deg * DegreeScale))
}

// RawToDegrees converts a raw field value to decimal degrees.
func RawToDegrees(raw int64) float64 {
	return float64(raw) / DegreeScale
}

func i64(v int64) *int64 {
	return &v
}
