// FILE: lixenwraith/typeconv/fill.go
package typeconv

import (
	"fmt"
	"reflect"
)

// FillRow writes the fields of model into the matching columns of row.
// Enums are stored as their ordinal and nil pointers as Missing. Columns the row
// does not carry are skipped. The first failing write aborts the call; cells already
// written are not restored.
func (c *Converter) FillRow(model any, row Row, opts ...MapOption) error {
	return c.fillRow(model, row, c.callOptions(opts))
}

// FillRow writes model into row using Default, or the converter given with Using.
func FillRow(model any, row Row, opts ...MapOption) error {
	o := newMapOptions(opts)
	return o.converter.fillRow(model, row, o)
}

func (c *Converter) fillRow(model any, row Row, o *mapOptions) error {
	if isNil(row) {
		return ErrNilSource
	}

	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("%w: nil model %T", ErrInvalidTarget, model)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: model must be a struct, got %T", ErrInvalidTarget, model)
	}

	schema, err := c.Schema(rv.Type())
	if err != nil {
		return err
	}
	fields, err := o.candidates(schema)
	if err != nil {
		return err
	}

	for _, f := range fields {
		column := o.keyFor(f)
		if !row.Has(column) {
			continue
		}
		if err := row.Set(column, cellValue(f, rv.FieldByIndex(f.Index))); err != nil {
			c.log().Debug("row fill aborted", "field", f.Name, "column", column, "error", err)
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

// cellValue is the row representation of a field value.
func cellValue(f Field, v reflect.Value) any {
	if f.Nullable {
		if v.IsNil() {
			return Missing
		}
		v = v.Elem()
	}

	if f.Kind == KindEnum {
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return v.Int()
		default:
			return v.Uint()
		}
	}
	return v.Interface()
}
