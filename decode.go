// FILE: lixenwraith/typeconv/decode.go
package typeconv

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"
)

// coerce converts raw into dst, a settable value of the field's declared type.
// Unsettable destinations, unsupported kinds and absent values are left untouched.
func (c *Converter) coerce(raw any, f Field, dst reflect.Value) error {
	if !dst.CanSet() {
		return nil
	}
	if f.Kind == KindUnsupported {
		c.log().Debug("skipping field of unsupported type", "field", f.Name, "type", f.Type.String())
		return nil
	}

	raw = indirect(raw)
	if IsMissing(raw) {
		return nil
	}

	if !f.Nullable {
		return c.convertValue(raw, f.Kind, dst)
	}

	ptr := reflect.New(f.Elem)
	if err := c.convertValue(raw, f.Kind, ptr.Elem()); err != nil {
		return err
	}
	dst.Set(ptr)
	return nil
}

func (c *Converter) convertValue(raw any, kind Kind, v reflect.Value) error {
	switch kind {
	case KindEnum:
		return c.convertEnum(raw, v)
	case KindTime:
		return c.convertTime(raw, v)
	default:
		return c.decode(raw, v)
	}
}

// decode is the generic value-to-type conversion for bool, numeric and string kinds.
func (c *Converter) decode(raw any, v reflect.Value) error {
	ptr := reflect.New(v.Type())

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           ptr.Interface(),
		WeaklyTypedInput: true,
		DecodeHook:       c.getDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %T to %s: %v", ErrConversion, raw, v.Type(), err)
	}

	v.Set(ptr.Elem())
	return nil
}

// getDecodeHook returns the composite decode hook for scalar conversions
func (c *Converter) getDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNumberHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		stringToBoolHookFunc(),
		numberRangeHookFunc(),
		timeToStringHookFunc(),
		stringerToStringHookFunc(),
	)
}

// stringToNumberHookFunc parses decimal text with the target's bit size, so overflow
// and zero-padded input behave like a plain decimal parse. Blank text is rejected.
// Duration text with units is left for the duration hook.
func stringToNumberHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}

		str := strings.TrimSpace(reflect.ValueOf(data).String())

		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if str == "" {
				return nil, errBlankNumber
			}
			n, err := strconv.ParseInt(str, 10, t.Bits())
			if err != nil && t == durationType {
				return str, nil
			}
			return n, err
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if str == "" {
				return nil, errBlankNumber
			}
			return strconv.ParseUint(str, 10, t.Bits())
		case reflect.Float32, reflect.Float64:
			if str == "" {
				return nil, errBlankNumber
			}
			return strconv.ParseFloat(str, t.Bits())
		}
		return data, nil
	}
}

var (
	errBlankNumber = errors.New("blank text is not a number")
	errOutOfRange  = errors.New("value out of range")
)

// stringToBoolHookFunc parses boolean text with strconv.ParseBool; blank text is rejected.
func stringToBoolHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}
		str := strings.TrimSpace(reflect.ValueOf(data).String())
		if str == "" {
			return nil, errors.New("blank text is not a boolean")
		}
		return strconv.ParseBool(str)
	}
}

// numberRangeHookFunc converts numeric values between numeric kinds, failing when
// the value does not fit the target. Fractions are rounded half to even.
func numberRangeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if !isNumberKind(f.Kind()) || !isNumberKind(t.Kind()) {
			return data, nil
		}

		src := reflect.ValueOf(data)
		dst := reflect.New(t).Elem()

		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := toInt64(src)
			if err != nil {
				return nil, err
			}
			if dst.OverflowInt(n) {
				return nil, fmt.Errorf("%w: %v for %s", errOutOfRange, data, t)
			}
			dst.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := toUint64(src)
			if err != nil {
				return nil, err
			}
			if dst.OverflowUint(n) {
				return nil, fmt.Errorf("%w: %v for %s", errOutOfRange, data, t)
			}
			dst.SetUint(n)
		default:
			var x float64
			switch {
			case src.CanInt():
				x = float64(src.Int())
			case src.CanUint():
				x = float64(src.Uint())
			default:
				x = src.Float()
				if !math.IsInf(x, 0) && !math.IsNaN(x) && dst.OverflowFloat(x) {
					return nil, fmt.Errorf("%w: %v for %s", errOutOfRange, data, t)
				}
			}
			dst.SetFloat(x)
		}
		return dst.Interface(), nil
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toInt64(v reflect.Value) (int64, error) {
	switch {
	case v.CanInt():
		return v.Int(), nil
	case v.CanUint():
		if v.Uint() > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", errOutOfRange, v.Uint())
		}
		return int64(v.Uint()), nil
	}
	x, err := roundFloat(v.Float())
	if err != nil {
		return 0, err
	}
	// 2^63 is the first float64 past the int64 range
	if x < math.MinInt64 || x >= 1<<63 {
		return 0, fmt.Errorf("%w: %v", errOutOfRange, v.Float())
	}
	return int64(x), nil
}

func toUint64(v reflect.Value) (uint64, error) {
	switch {
	case v.CanUint():
		return v.Uint(), nil
	case v.CanInt():
		if v.Int() < 0 {
			return 0, fmt.Errorf("%w: %d", errOutOfRange, v.Int())
		}
		return uint64(v.Int()), nil
	}
	x, err := roundFloat(v.Float())
	if err != nil {
		return 0, err
	}
	if x < 0 || x >= 1<<64 {
		return 0, fmt.Errorf("%w: %v", errOutOfRange, v.Float())
	}
	return uint64(x), nil
}

func roundFloat(x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: %v", errOutOfRange, x)
	}
	return math.RoundToEven(x), nil
}

// timeToStringHookFunc renders time.Time as RFC 3339 for string targets
func timeToStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f != timeType || t.Kind() != reflect.String {
			return data, nil
		}
		return data.(time.Time).Format(time.RFC3339Nano), nil
	}
}

// stringerToStringHookFunc lets enum values land in string fields by name
func stringerToStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t.Kind() != reflect.String || f.Kind() == reflect.String {
			return data, nil
		}
		if s, ok := data.(fmt.Stringer); ok {
			return s.String(), nil
		}
		return data, nil
	}
}

// convertEnum accepts the enum type itself, a decimal ordinal, or a member name.
func (c *Converter) convertEnum(raw any, v reflect.Value) error {
	rv := reflect.ValueOf(raw)
	if rv.Type() == v.Type() {
		v.Set(rv)
		return nil
	}

	text := strings.TrimSpace(textOf(raw))

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(text, 10, v.Type().Bits()); err == nil {
			v.SetInt(n)
			return nil
		}
	default:
		if n, err := strconv.ParseUint(text, 10, v.Type().Bits()); err == nil {
			v.SetUint(n)
			return nil
		}
	}

	ptr := reflect.New(v.Type())
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
		return fmt.Errorf("%w: %q for %s: %v", ErrEnumParse, text, v.Type(), err)
	}
	v.Set(ptr.Elem())
	return nil
}

func (c *Converter) convertTime(raw any, v reflect.Value) error {
	var text string
	switch t := raw.(type) {
	case time.Time:
		v.Set(reflect.ValueOf(t))
		return nil
	case string:
		text = t
	case []byte:
		text = string(t)
	default:
		return fmt.Errorf("%w: cannot convert %T to time.Time", ErrConversion, raw)
	}

	parsed, err := c.parseTime(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	v.Set(reflect.ValueOf(parsed))
	return nil
}

// parseTime tries the configured layouts, then free-form parsing in the converter's location.
func (c *Converter) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	for _, layout := range c.options.TimeLayouts {
		if t, err := time.ParseInLocation(layout, s, c.options.Location); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, c.options.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse time %q: %w", s, err)
	}
	return t, nil
}

// indirect dereferences pointers; a nil pointer becomes nil.
func indirect(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// fieldFor builds a standalone descriptor for a declared type.
func fieldFor(t reflect.Type) Field {
	f := Field{Name: t.String(), Key: t.String(), Type: t, Elem: t}
	if t.Kind() == reflect.Ptr {
		f.Elem = t.Elem()
		f.Nullable = true
	}
	f.Kind = kindOf(f.Elem)
	return f
}

// Coerce converts raw into the value target points to.
// An absent raw value leaves the target unchanged; an unsupported target type is an error.
func (c *Converter) Coerce(raw any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: coerce target must be a non-nil pointer, got %T", ErrInvalidTarget, target)
	}

	f := fieldFor(rv.Elem().Type())
	if f.Kind == KindUnsupported {
		return fmt.Errorf("%w: unsupported target type %s", ErrConversion, f.Type)
	}
	return c.coerce(raw, f, rv.Elem())
}

// ConvertTo converts raw to T; ok is false when raw is absent or cannot be converted.
func ConvertTo[T any](raw any) (T, bool) {
	var result T
	if IsMissing(indirect(raw)) {
		return result, false
	}
	if err := Default.Coerce(raw, &result); err != nil {
		var zero T
		return zero, false
	}
	return result, true
}

// ConvertOr converts raw to T, returning def when that is not possible.
func ConvertOr[T any](raw any, def T) T {
	if v, ok := ConvertTo[T](raw); ok {
		return v
	}
	return def
}

// ToList converts every string to T. Any failure discards the whole list.
func ToList[T any](values []string) ([]T, error) {
	if values == nil {
		return nil, nil
	}

	list := make([]T, 0, len(values))
	for i, s := range values {
		var item T
		if err := Default.Coerce(s, &item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		list = append(list, item)
	}
	return list, nil
}
