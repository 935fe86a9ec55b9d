// FILE: lixenwraith/typeconv/register.go
package typeconv

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Kind is the semantic type of a struct field as seen by the coercion engine.
type Kind int

const (
	// KindUnsupported fields are never written by the forward conversions.
	KindUnsupported Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	// KindEnum is an integer type whose pointer implements encoding.TextUnmarshaler.
	KindEnum
	// KindTime is time.Time.
	KindTime
)

var kindNames = [...]string{
	KindUnsupported: "unsupported",
	KindBool:        "bool",
	KindInt:         "int",
	KindUint:        "uint",
	KindFloat:       "float",
	KindString:      "string",
	KindEnum:        "enum",
	KindTime:        "time",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

var (
	timeType            = reflect.TypeOf(time.Time{})
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// kindOf classifies a non-pointer type.
func kindOf(t reflect.Type) Kind {
	if t == timeType {
		return KindTime
	}
	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if isEnumType(t) {
			return KindEnum
		}
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if isEnumType(t) {
			return KindEnum
		}
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	}
	return KindUnsupported
}

func isEnumType(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// Field describes one candidate field of a struct type.
type Field struct {
	Name     string       // Go field name
	Key      string       // source key: tag value, or Name when untagged
	Index    []int        // index path for reflect.Value.FieldByIndex
	Type     reflect.Type // declared type
	Elem     reflect.Type // Type with one pointer level removed when Nullable
	Kind     Kind         // semantic kind of Elem
	Nullable bool         // declared as *Elem
}

// Schema is the field-descriptor table of a struct type.
type Schema struct {
	Type   reflect.Type
	Fields []Field
	byName map[string]int
}

// Field returns the descriptor for the exact Go field name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Schema returns the field-descriptor table for t, which must be a struct or a pointer to one.
// Tables are built once per type and reused.
func (c *Converter) Schema(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInvalidTarget)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: schema requires a struct type, got %s", ErrInvalidTarget, t)
	}

	if cached, ok := c.schemas.Load(t); ok {
		return cached.(*Schema), nil
	}

	s := &Schema{Type: t, byName: make(map[string]int)}
	c.collectFields(t, nil, s)

	actual, _ := c.schemas.LoadOrStore(t, s)
	return actual.(*Schema), nil
}

// SchemaOf returns the field-descriptor table of T, using Default when c is nil.
func SchemaOf[T any](c *Converter) (*Schema, error) {
	if c == nil {
		c = Default
	}
	return c.Schema(reflect.TypeOf((*T)(nil)).Elem())
}

// collectFields walks the direct fields of t first and then its embedded structs,
// so an outer field shadows a promoted one of the same name.
func (c *Converter) collectFields(t reflect.Type, index []int, s *Schema) {
	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get(c.options.TagName)
		if tag == "-" {
			continue
		}

		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct && field.Type != timeType {
			embedded = append(embedded, field)
			continue
		}

		if !field.IsExported() {
			continue
		}
		if _, seen := s.byName[field.Name]; seen {
			continue
		}

		key := field.Name
		if tag != "" {
			if name, _, _ := strings.Cut(tag, ","); name != "" {
				key = name
			}
		}

		fd := Field{
			Name:  field.Name,
			Key:   key,
			Index: append(append([]int(nil), index...), i),
			Type:  field.Type,
			Elem:  field.Type,
		}
		if field.Type.Kind() == reflect.Ptr {
			fd.Elem = field.Type.Elem()
			fd.Nullable = true
		}
		fd.Kind = kindOf(fd.Elem)

		s.byName[fd.Name] = len(s.Fields)
		s.Fields = append(s.Fields, fd)
	}

	for _, field := range embedded {
		c.collectFields(field.Type, append(append([]int(nil), index...), field.Index...), s)
	}
}
