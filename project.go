// FILE: lixenwraith/typeconv/project.go
package typeconv

import (
	"fmt"
	"reflect"
)

// Project copies every field of dst whose exact name also exists on src with an
// assignable type. The copy is shallow: pointers, slices and maps are shared.
// Fields only one side declares are ignored. A nil src copies nothing.
func (c *Converter) Project(src, dst any) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return fmt.Errorf("%w: project target must be a non-nil pointer to a struct, got %T", ErrInvalidTarget, dst)
	}
	dv = dv.Elem()

	sv := reflect.ValueOf(src)
	for sv.Kind() == reflect.Ptr {
		if sv.IsNil() {
			return nil
		}
		sv = sv.Elem()
	}
	if !sv.IsValid() {
		return nil
	}

	srcSchema, err := c.Schema(sv.Type())
	if err != nil {
		return err
	}
	dstSchema, err := c.Schema(dv.Type())
	if err != nil {
		return err
	}

	for _, df := range dstSchema.Fields {
		sf, ok := srcSchema.Field(df.Name)
		if !ok {
			continue
		}

		to := dv.FieldByIndex(df.Index)
		if !to.CanSet() {
			continue
		}
		if !sf.Type.AssignableTo(df.Type) {
			c.log().Debug("skipping field with incompatible type", "field", df.Name, "from", sf.Type.String(), "to", df.Type.String())
			continue
		}
		to.Set(sv.FieldByIndex(sf.Index))
	}
	return nil
}

// Project creates a D holding the same-named fields of src. A nil src yields a nil D.
func Project[D, S any](src *S, opts ...MapOption) (*D, error) {
	if src == nil {
		return nil, nil
	}

	o := newMapOptions(opts)
	dst := new(D)
	if err := o.converter.Project(src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}
