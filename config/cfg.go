package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"mview/attr"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	FontConfig struct {
		Source     FontSource `yaml:"source" validate:"gte=0"`
		DPI        float64    `yaml:"dpi" validate:"gt=0"`
		Regular    string     `yaml:"regular,omitempty" sanitize:"assure_file_access"`
		Italic     string     `yaml:"italic,omitempty" sanitize:"assure_file_access"`
		Bold       string     `yaml:"bold,omitempty" sanitize:"assure_file_access"`
		BoldItalic string     `yaml:"bold_italic,omitempty" sanitize:"assure_file_access"`
		Mono       string     `yaml:"mono,omitempty" sanitize:"assure_file_access"`
	}

	PicturesConfig struct {
		MaxSize      int     `yaml:"max_size" validate:"gte=0"`
		StrokeFactor float64 `yaml:"stroke_factor" validate:"gte=0.0"`
	}

	LayoutConfig struct {
		FontSize       float64        `yaml:"font_size" validate:"gt=0"`
		AvailableWidth float64        `yaml:"available_width" validate:"gte=0"`
		Display        bool           `yaml:"display"`
		Font           FontConfig     `yaml:"font"`
		Pictures       PicturesConfig `yaml:"pictures"`
	}

	RenderConfig struct {
		Format             RenderFormat `yaml:"format" validate:"gte=0"`
		JPEGQuality        int          `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		Padding            int          `yaml:"padding" validate:"gte=0"`
		Foreground         string       `yaml:"foreground" validate:"required"`
		Background         string       `yaml:"background" validate:"required"`
		OutputNameTemplate string       `yaml:"output_name_template"`
	}

	EditingConfig struct {
		ShowCursor bool   `yaml:"show_cursor"`
		Cursor     string `yaml:"cursor_color" validate:"required"`
		Selection  string `yaml:"selection_color" validate:"required"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Layout    LayoutConfig   `yaml:"layout"`
		Render    RenderConfig   `yaml:"render"`
		Editing   EditingConfig  `yaml:"editing"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// Palette holds parsed colors of render and editing sections.
type Palette struct {
	Foreground, Background color.Color
	Cursor, Selection      color.Color
}

// Palette parses configured colors, all malformed values are reported.
func (cfg *Config) Palette() (Palette, error) {
	var (
		p   Palette
		err error
	)
	parse := func(name, value string) color.Color {
		c, e := attr.ParseColor(value)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", name, e))
			return nil
		}
		return c
	}
	p.Foreground = parse("render.foreground", cfg.Render.Foreground)
	p.Background = parse("render.background", cfg.Render.Background)
	p.Cursor = parse("editing.cursor_color", cfg.Editing.Cursor)
	p.Selection = parse("editing.selection_color", cfg.Editing.Selection)
	return p, err
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
