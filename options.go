// FILE: lixenwraith/typeconv/options.go
package typeconv

import (
	"fmt"

	"golang.org/x/text/cases"
)

// MapOption customizes a single conversion call.
type MapOption func(*mapOptions)

type mapOptions struct {
	converter  *Converter
	fieldMap   map[string]string
	onlyMapped bool
	ignore     map[string]struct{}
	fields     []string
}

func newMapOptions(opts []MapOption) *mapOptions {
	o := &mapOptions{converter: Default}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.converter == nil {
		o.converter = Default
	}
	return o
}

// Using runs the call with c instead of Default.
func Using(c *Converter) MapOption {
	return func(o *mapOptions) {
		o.converter = c
	}
}

// WithFieldMap maps Go field names (exact, case-sensitive) to source keys or row columns.
// Repeated options merge, later entries win.
func WithFieldMap(fieldMap map[string]string) MapOption {
	return func(o *mapOptions) {
		if o.fieldMap == nil {
			o.fieldMap = make(map[string]string, len(fieldMap))
		}
		for field, key := range fieldMap {
			o.fieldMap[field] = key
		}
	}
}

// OnlyMapped restricts the call to fields present in the field map.
func OnlyMapped() MapOption {
	return func(o *mapOptions) {
		o.onlyMapped = true
	}
}

// Ignore skips fields whose Go name or source key matches one of names, ignoring case.
func Ignore(names ...string) MapOption {
	return func(o *mapOptions) {
		if o.ignore == nil {
			o.ignore = make(map[string]struct{}, len(names))
		}
		folder := cases.Fold()
		for _, name := range names {
			o.ignore[folder.String(name)] = struct{}{}
		}
	}
}

// Fields limits the call to the named Go fields, in the given order.
func Fields(names ...string) MapOption {
	return func(o *mapOptions) {
		o.fields = append(o.fields, names...)
	}
}

func (o *mapOptions) keyFor(f Field) string {
	if key, ok := o.fieldMap[f.Name]; ok {
		return key
	}
	return f.Key
}

func (o *mapOptions) ignored(f Field) bool {
	if len(o.ignore) == 0 {
		return false
	}
	folder := cases.Fold()
	if _, ok := o.ignore[folder.String(f.Name)]; ok {
		return true
	}
	_, ok := o.ignore[folder.String(f.Key)]
	return ok
}

// candidates returns the fields a call considers after subset, map and ignore filtering.
func (o *mapOptions) candidates(s *Schema) ([]Field, error) {
	fields := s.Fields
	if len(o.fields) > 0 {
		fields = make([]Field, 0, len(o.fields))
		for _, name := range o.fields {
			f, ok := s.Field(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidTarget, s.Type, name)
			}
			fields = append(fields, f)
		}
	}

	result := make([]Field, 0, len(fields))
	for _, f := range fields {
		if o.onlyMapped {
			if _, mapped := o.fieldMap[f.Name]; !mapped {
				continue
			}
		}
		if o.ignored(f) {
			o.converter.log().Debug("skipping ignored field", "field", f.Name)
			continue
		}
		result = append(result, f)
	}
	return result, nil
}
