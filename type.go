// FILE: lixenwraith/typeconv/type.go
package typeconv

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// MinTime is the earliest representable time, returned by ToDateTime on failure.
var MinTime = time.Time{}

// textOf returns the text form of a value; nil and Missing yield "".
func textOf(v any) string {
	v = indirect(v)
	if IsMissing(v) {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprintf("%v", v)
}

// ToBool parses the text form of v as a boolean, returning def when v is absent or unparsable.
func ToBool(v any, def bool) bool {
	if IsMissing(indirect(v)) {
		return def
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(textOf(v))); err == nil {
		return b
	}
	return def
}

// ToInt parses the text form of v as a 32-bit decimal integer, returning def on failure.
func ToInt(v any, def int) int {
	if IsMissing(indirect(v)) {
		return def
	}
	if i, err := strconv.ParseInt(strings.TrimSpace(textOf(v)), 10, 32); err == nil {
		return int(i)
	}
	return def
}

// ToFloat parses the text form of v as a single-precision float, returning def on failure.
func ToFloat(v any, def float32) float32 {
	if IsMissing(indirect(v)) {
		return def
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(textOf(v)), 32); err == nil {
		return float32(f)
	}
	return def
}

// ToDateTime converts v to a time using Default, returning MinTime on failure.
func ToDateTime(v any) time.Time {
	return Default.ToDateTime(v)
}

// ToDateTimeOr converts v to a time using Default, returning def on failure.
func ToDateTimeOr(v any, def time.Time) time.Time {
	return Default.ToDateTimeOr(v, def)
}

// ToDateTime converts v to a time, returning MinTime when v is absent or unparsable.
func (c *Converter) ToDateTime(v any) time.Time {
	return c.ToDateTimeOr(v, MinTime)
}

// ToDateTimeOr converts v to a time, returning def when v is absent or unparsable.
func (c *Converter) ToDateTimeOr(v any, def time.Time) time.Time {
	v = indirect(v)
	if IsMissing(v) {
		return def
	}
	if t, ok := v.(time.Time); ok {
		return t
	}
	t, err := c.parseTime(textOf(v))
	if err != nil {
		return def
	}
	return t
}

// EpochToDate converts a Unix epoch count (seconds, or milliseconds when millis is set)
// to local time.
func EpochToDate(epoch int64, millis bool) time.Time {
	return Default.EpochToDate(epoch, millis)
}

// EpochFloatToDate is EpochToDate for fractional counts.
func EpochFloatToDate(epoch float64, millis bool) time.Time {
	return Default.EpochFloatToDate(epoch, millis)
}

// ParseEpoch parses a decimal epoch count and converts it with EpochToDate.
func ParseEpoch(s string, millis bool) (time.Time, error) {
	return Default.ParseEpoch(s, millis)
}

// DateToEpoch returns the Unix epoch count of t, flooring any remainder.
func DateToEpoch(t time.Time, millis bool) int64 {
	if millis {
		return t.UnixMilli()
	}
	return t.Unix()
}

// EpochToDate converts an epoch count to the converter's location.
func (c *Converter) EpochToDate(epoch int64, millis bool) time.Time {
	if millis {
		return time.UnixMilli(epoch).In(c.options.Location)
	}
	return time.Unix(epoch, 0).In(c.options.Location)
}

// EpochFloatToDate converts a fractional epoch count to the converter's location.
func (c *Converter) EpochFloatToDate(epoch float64, millis bool) time.Time {
	unit := float64(time.Second)
	if millis {
		unit = float64(time.Millisecond)
	}
	whole, frac := math.Modf(epoch)
	sec := int64(whole)
	nsec := int64(math.Round(frac * unit))
	if millis {
		sec, nsec = sec/1000, (sec%1000)*int64(time.Millisecond)+nsec
	}
	return time.Unix(sec, nsec).In(c.options.Location)
}

// ParseEpoch parses a decimal epoch count and converts it to the converter's location.
func (c *Converter) ParseEpoch(s string, millis bool) (time.Time, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch %q: %v", ErrConversion, s, err)
	}
	return c.EpochToDate(n, millis), nil
}
