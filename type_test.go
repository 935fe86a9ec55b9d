// FILE: lixenwraith/typeconv/type_test.go
package typeconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScalarDefaults tests the default-returning scalar converters
func TestScalarDefaults(t *testing.T) {
	t.Run("Bool", func(t *testing.T) {
		assert.True(t, ToBool(nil, true))
		assert.True(t, ToBool(Missing, true))
		assert.True(t, ToBool("1", false))
		assert.True(t, ToBool(" true ", false))
		assert.False(t, ToBool("F", true))
		assert.False(t, ToBool("yes", false), "unrecognized text returns default")
		assert.True(t, ToBool(true, false))
	})

	t.Run("Int", func(t *testing.T) {
		assert.Equal(t, -1, ToInt("abc", -1))
		assert.Equal(t, 42, ToInt("42", -1))
		assert.Equal(t, 42, ToInt(" 42 ", -1))
		assert.Equal(t, 5, ToInt(int64(5), 0))
		assert.Equal(t, 9, ToInt(nil, 9))
		assert.Equal(t, -1, ToInt("2147483648", -1), "out of 32-bit range")
		assert.Equal(t, -1, ToInt("1.5", -1))
		assert.Equal(t, 3, ToInt(strPtr("3"), 0))
	})

	t.Run("Float", func(t *testing.T) {
		assert.Equal(t, float32(1.25), ToFloat("1.25", 0))
		assert.Equal(t, float32(2), ToFloat(2, 0))
		assert.Equal(t, float32(-3), ToFloat("x", -3))
		assert.Equal(t, float32(7), ToFloat(Missing, 7))
	})
}

// TestDateConversions tests text and epoch date conversions
func TestDateConversions(t *testing.T) {
	c := NewWithOptions(Options{Location: time.UTC})

	t.Run("ToDateTime", func(t *testing.T) {
		assert.Equal(t, MinTime, ToDateTime(nil))
		assert.Equal(t, MinTime, ToDateTime("abc"))

		got := c.ToDateTime("2022-02-03 04:05:06")
		assert.True(t, time.Date(2022, 2, 3, 4, 5, 6, 0, time.UTC).Equal(got))

		ts := time.Date(2022, 2, 3, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, ts, c.ToDateTime(ts))
		assert.Equal(t, ts, c.ToDateTime(&ts))
	})

	t.Run("ToDateTimeOr", func(t *testing.T) {
		def := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, def, ToDateTimeOr(nil, def))
		assert.Equal(t, def, ToDateTimeOr("abc", def))
		assert.True(t, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC).Equal(c.ToDateTimeOr("2001-01-01", def)))
	})

	t.Run("EpochToDate", func(t *testing.T) {
		assert.True(t, time.Unix(0, 0).Equal(EpochToDate(0, false)))
		assert.Equal(t, time.Local, EpochToDate(0, false).Location())

		got := c.EpochToDate(1_700_000_000, false)
		assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), got)

		got = c.EpochToDate(1_700_000_000_123, true)
		assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 123_000_000, time.UTC), got)

		got = c.EpochToDate(-1, false)
		assert.Equal(t, time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC), got)
	})

	t.Run("EpochFloatToDate", func(t *testing.T) {
		got := c.EpochFloatToDate(1.5, false)
		assert.Equal(t, time.Unix(1, 500_000_000).UTC(), got)

		got = c.EpochFloatToDate(1500.5, true)
		assert.Equal(t, time.Unix(1, 500_500_000).UTC(), got)

		got = c.EpochFloatToDate(-1.5, false)
		assert.Equal(t, time.Unix(-2, 500_000_000).UTC(), got)
	})

	t.Run("DateToEpoch", func(t *testing.T) {
		assert.Equal(t, int64(1000), DateToEpoch(EpochToDate(1000, false), false))
		assert.Equal(t, int64(1000), DateToEpoch(EpochToDate(1000, true), true))

		// sub-unit remainders are floored, including before the epoch
		assert.Equal(t, int64(1), DateToEpoch(time.Unix(1, 999_999_999), false))
		assert.Equal(t, int64(-1), DateToEpoch(time.Unix(-1, 500_000_000), false))
		assert.Equal(t, int64(1), DateToEpoch(time.Unix(0, 1_999_999), true))
		assert.Equal(t, int64(-1), DateToEpoch(time.Unix(0, -1), true))
	})

	t.Run("ParseEpoch", func(t *testing.T) {
		got, err := c.ParseEpoch(" 60 ", false)
		require.NoError(t, err)
		assert.Equal(t, time.Unix(60, 0).UTC(), got)

		got, err = c.ParseEpoch("60000", true)
		require.NoError(t, err)
		assert.Equal(t, time.Unix(60, 0).UTC(), got)

		_, err = ParseEpoch("sixty", false)
		assert.ErrorIs(t, err, ErrConversion)

		_, err = ParseEpoch("1.5", false)
		assert.ErrorIs(t, err, ErrConversion)
	})
}

// TestTextOf tests the text form used by enum and scalar parsing
func TestTextOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"Missing", Missing, ""},
		{"String", "s", "s"},
		{"Bytes", []byte("b"), "b"},
		{"Int", int16(-4), "-4"},
		{"Uint", uint8(200), "200"},
		{"Float", 0.1, "0.1"},
		{"Float32", float32(0.1), "0.1"},
		{"Bool", false, "false"},
		{"Stringer", RoleMember, "Member"},
		{"Time", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "2020-01-01T00:00:00Z"},
		{"Pointer", strPtr("p"), "p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textOf(tt.in))
		})
	}
}
