// FILE: lixenwraith/typeconv/config.go
package typeconv

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTagName is the struct tag consulted for source keys when Options.TagName is empty.
const DefaultTagName = "db"

// Options configures a Converter.
type Options struct {
	// TagName is the struct tag holding the source key of a field.
	// A tag value of "-" drops the field. Default: "db"
	TagName string

	// Location is used for parsing times without an explicit zone and for epoch results.
	// Default: time.Local
	Location *time.Location

	// TimeLayouts are tried in order before free-form date parsing.
	TimeLayouts []string

	// Logger receives debug records about skipped fields and aborted conversions.
	// Default: discards everything
	Logger *slog.Logger
}

// DefaultOptions returns the standard converter options
func DefaultOptions() Options {
	return Options{
		TagName:  DefaultTagName,
		Location: time.Local,
		TimeLayouts: []string{
			time.RFC3339Nano,
			"2006-01-02 15:04:05",
			"2006-01-02",
		},
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Converter maps rows, tables and collections into structs and back.
// It holds the options and a memo of field-descriptor tables per struct type.
type Converter struct {
	options Options
	schemas sync.Map // map[reflect.Type]*Schema
}

// Default is the converter used by the package-level functions.
var Default = New()

// New creates a Converter with DefaultOptions.
func New() *Converter {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Converter, filling zero option fields with their defaults.
func NewWithOptions(opts Options) *Converter {
	def := DefaultOptions()
	if opts.TagName == "" {
		opts.TagName = def.TagName
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.TimeLayouts == nil {
		opts.TimeLayouts = def.TimeLayouts
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
	return &Converter{options: opts}
}

// Options returns a copy of the converter's options.
func (c *Converter) Options() Options {
	opts := c.options
	opts.TimeLayouts = append([]string(nil), c.options.TimeLayouts...)
	return opts
}

func (c *Converter) log() *slog.Logger {
	return c.options.Logger
}
