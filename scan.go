// FILE: lixenwraith/typeconv/scan.go
package typeconv

import (
	"fmt"
	"reflect"
)

// ScanRow populates the struct target points to from a row.
// Fields whose column is missing or absent keep their current value. The first field
// that cannot be converted aborts the call and target is left unchanged.
func (c *Converter) ScanRow(row Row, target any, opts ...MapOption) error {
	return c.scanRow(row, target, c.callOptions(opts))
}

// ScanCollection populates the struct target points to from a key/value collection.
// It follows the same skip and abort rules as ScanRow.
func (c *Converter) ScanCollection(coll Collection, target any, opts ...MapOption) error {
	return c.scanCollection(coll, target, c.callOptions(opts))
}

// ScanTable converts every row of table and stores the list in target,
// which must point to a []T or []*T of structs. Any row failure aborts the whole table.
func (c *Converter) ScanTable(table Table, target any, opts ...MapOption) error {
	return c.scanTable(table, target, c.callOptions(opts))
}

// FromRow converts a row into a new T.
func FromRow[T any](row Row, opts ...MapOption) (*T, error) {
	o := newMapOptions(opts)
	model := new(T)
	if err := o.converter.scanRow(row, model, o); err != nil {
		return nil, err
	}
	return model, nil
}

// FromTable converts every row of a table into a new T.
func FromTable[T any](table Table, opts ...MapOption) ([]*T, error) {
	o := newMapOptions(opts)
	var list []*T
	if err := o.converter.scanTable(table, &list, o); err != nil {
		return nil, err
	}
	return list, nil
}

// FromCollection converts a key/value collection into a new T.
func FromCollection[T any](coll Collection, opts ...MapOption) (*T, error) {
	o := newMapOptions(opts)
	model := new(T)
	if err := o.converter.scanCollection(coll, model, o); err != nil {
		return nil, err
	}
	return model, nil
}

// callOptions builds call options bound to c regardless of any Using option.
func (c *Converter) callOptions(opts []MapOption) *mapOptions {
	o := newMapOptions(opts)
	o.converter = c
	return o
}

// lookupFunc resolves a source key to a raw value; ok is false when the key is absent.
type lookupFunc func(key string) (value any, ok bool)

func rowLookup(row Row) lookupFunc {
	return func(key string) (any, bool) {
		if !row.Has(key) {
			return nil, false
		}
		return row.Value(key)
	}
}

func (c *Converter) scanRow(row Row, target any, o *mapOptions) error {
	if isNil(row) {
		return ErrNilSource
	}
	return c.scanInto(target, rowLookup(row), o)
}

func (c *Converter) scanCollection(coll Collection, target any, o *mapOptions) error {
	if isNil(coll) {
		return ErrNilSource
	}
	return c.scanInto(target, coll.Lookup, o)
}

// scanInto fills a scratch copy of the target and writes it back only on success.
func (c *Converter) scanInto(target any, lookup lookupFunc, o *mapOptions) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: scan target must be a non-nil pointer to a struct, got %T", ErrInvalidTarget, target)
	}

	schema, err := c.Schema(rv.Type())
	if err != nil {
		return err
	}
	fields, err := o.candidates(schema)
	if err != nil {
		return err
	}

	scratch := reflect.New(schema.Type).Elem()
	scratch.Set(rv.Elem())

	if err := c.populate(scratch, fields, lookup, o); err != nil {
		c.log().Debug("conversion aborted", "type", schema.Type.String(), "error", err)
		return err
	}

	rv.Elem().Set(scratch)
	return nil
}

func (c *Converter) scanTable(table Table, target any, o *mapOptions) error {
	if isNil(table) {
		return ErrNilSource
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%w: table target must be a non-nil pointer to a slice, got %T", ErrInvalidTarget, target)
	}

	sliceType := rv.Elem().Type()
	elemType := sliceType.Elem()
	structType := elemType
	byPointer := elemType.Kind() == reflect.Ptr
	if byPointer {
		structType = elemType.Elem()
	}

	schema, err := c.Schema(structType)
	if err != nil {
		return err
	}
	fields, err := o.candidates(schema)
	if err != nil {
		return err
	}

	list := reflect.MakeSlice(sliceType, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		item := reflect.New(structType)
		if err := c.populate(item.Elem(), fields, rowLookup(table.Row(i)), o); err != nil {
			c.log().Debug("table conversion aborted", "type", structType.String(), "row", i, "error", err)
			return fmt.Errorf("row %d: %w", i, err)
		}
		if byPointer {
			list = reflect.Append(list, item)
		} else {
			list = reflect.Append(list, item.Elem())
		}
	}

	rv.Elem().Set(list)
	return nil
}

// populate runs the coercion engine for each candidate field present in the source.
func (c *Converter) populate(v reflect.Value, fields []Field, lookup lookupFunc, o *mapOptions) error {
	for _, f := range fields {
		key := o.keyFor(f)
		raw, ok := lookup(key)
		if !ok || IsMissing(raw) {
			c.log().Debug("no source value", "field", f.Name, "key", key)
			continue
		}

		if err := c.coerce(raw, f, v.FieldByIndex(f.Index)); err != nil {
			return &FieldError{Field: f.Name, Key: key, Value: raw, Err: err}
		}
	}
	return nil
}

// isNil reports whether an interface holds nothing or a nil pointer, map or slice.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
