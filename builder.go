// FILE: lixenwraith/typeconv/builder.go
package typeconv

import (
	"fmt"
	"log/slog"
	"time"
)

// Builder provides a fluent interface for building converters
type Builder struct {
	opts    Options
	profile *Profile
	err     error
}

// NewBuilder creates a new converter builder
func NewBuilder() *Builder {
	return &Builder{
		opts: DefaultOptions(),
	}
}

// WithTagName sets the struct tag holding source keys
func (b *Builder) WithTagName(name string) *Builder {
	b.opts.TagName = name
	return b
}

// WithLocation sets the location for zone-less times and epoch results
func (b *Builder) WithLocation(loc *time.Location) *Builder {
	b.opts.Location = loc
	return b
}

// WithTimeLayouts replaces the layouts tried before free-form date parsing
func (b *Builder) WithTimeLayouts(layouts ...string) *Builder {
	b.opts.TimeLayouts = layouts
	return b
}

// WithLogger sets the debug logger
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithProfile applies the converter-level settings of a parsed profile.
// Settings made after this call take precedence.
func (b *Builder) WithProfile(p *Profile) *Builder {
	if p == nil {
		return b
	}
	b.profile = p

	if p.TagName != "" {
		b.opts.TagName = p.TagName
	}
	if len(p.TimeLayouts) > 0 {
		b.opts.TimeLayouts = p.TimeLayouts
	}
	if p.Location != "" {
		loc, err := time.LoadLocation(p.Location)
		if err != nil {
			b.err = fmt.Errorf("profile location %q: %w", p.Location, err)
			return b
		}
		b.opts.Location = loc
	}
	return b
}

// WithProfileData parses a profile document and applies it like WithProfile
func (b *Builder) WithProfileData(data []byte, format string) *Builder {
	p, err := ParseProfile(data, format)
	if err != nil {
		b.err = fmt.Errorf("failed to load profile: %w", err)
		return b
	}
	return b.WithProfile(p)
}

// WithProfileFile loads a profile from disk and applies it like WithProfile
func (b *Builder) WithProfileFile(path string) *Builder {
	p, err := LoadProfile(path)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithProfile(p)
}

// Profile returns the profile applied to the builder, if any
func (b *Builder) Profile() *Profile {
	return b.profile
}

// Build creates the Converter with all specified options
func (b *Builder) Build() (*Converter, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewWithOptions(b.opts), nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Converter {
	c, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("converter build failed: %v", err))
	}
	return c
}
