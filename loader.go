// FILE: lixenwraith/typeconv/loader.go
package typeconv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Profile format names accepted by ParseProfile
const (
	FormatAuto = ""
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Profile is a mapping document: converter settings plus per-model call options.
//
//	tag_name = "col"
//	location = "UTC"
//	time_layouts = ["02/01/2006"]
//
//	[models.User]
//	only_mapped = false
//	ignore = ["Password"]
//	[models.User.fields]
//	Name = "user_name"
type Profile struct {
	TagName     string                  `toml:"tag_name"`
	Location    string                  `toml:"location"`
	TimeLayouts []string                `toml:"time_layouts"`
	Models      map[string]ModelProfile `toml:"models"`
}

// ModelProfile holds the call options of one model type.
type ModelProfile struct {
	Fields     map[string]string `toml:"fields"`
	Ignore     []string          `toml:"ignore"`
	OnlyMapped bool              `toml:"only_mapped"`
}

// ParseProfile parses a mapping document. An empty format detects it from the content.
func ParseProfile(data []byte, format string) (*Profile, error) {
	if format == FormatAuto {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine profile format")
		}
	}

	raw := make(map[string]any)
	switch strings.ToLower(format) {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML profile: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON profile: %w", err)
		}
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q", format)
	}

	var p Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "toml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProfile reads a mapping document from disk. The format follows the file
// extension, falling back to content detection.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read profile '%s': %w", path, err)
	}

	p, err := ParseProfile(data, formatFromExtension(path))
	if err != nil {
		return nil, fmt.Errorf("profile '%s': %w", path, err)
	}
	return p, nil
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatAuto
}

func (p *Profile) validate() error {
	var errs []error
	if p.Location != "" {
		if _, err := time.LoadLocation(p.Location); err != nil {
			errs = append(errs, fmt.Errorf("location %q: %w", p.Location, err))
		}
	}
	for name, m := range p.Models {
		for field, key := range m.Fields {
			if field == "" || key == "" {
				errs = append(errs, fmt.Errorf("model %s: empty field mapping %q = %q", name, field, key))
			}
		}
	}
	return errors.Join(errs...)
}

// Model returns the call options stored for a model name.
func (p *Profile) Model(name string) (ModelProfile, bool) {
	m, ok := p.Models[name]
	return m, ok
}

// WithModel turns the named model entry of p into call options.
// An unknown model adds nothing.
func WithModel(p *Profile, name string) MapOption {
	return func(o *mapOptions) {
		if p == nil {
			return
		}
		m, ok := p.Models[name]
		if !ok {
			return
		}
		WithFieldMap(m.Fields)(o)
		if len(m.Ignore) > 0 {
			Ignore(m.Ignore...)(o)
		}
		if m.OnlyMapped {
			o.onlyMapped = true
		}
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	// TOML before YAML: a TOML document often parses as a YAML scalar
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return ""
}
