package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultFixtures []byte

//go:embed fixtures.schema.json
var fixturesSchema []byte

const fixturesSchemaURL = "fixtures.schema.json"

// Format names a fixture file encoding.
type Format string

// Supported fixture formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for fixture files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported seed fixture format")

// StatusFixture describes one task status to ensure.
type StatusFixture struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	Slug string `yaml:"slug" toml:"slug" json:"slug"`
}

// Fixtures is the set of statuses and labels to ensure.
type Fixtures struct {
	Statuses []StatusFixture `yaml:"statuses" toml:"statuses" json:"statuses,omitempty"`
	Labels   []string        `yaml:"labels" toml:"labels" json:"labels,omitempty"`
}

// FormatFromPath picks the fixture format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFixtures decodes fixtures in the given format and checks them against
// the fixture schema.
func ParseFixtures(data []byte, format Format) (*Fixtures, error) {
	var f Fixtures
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse seed fixtures: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse seed fixtures: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := validateFixtures(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validateFixtures(f *Fixtures) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(fixturesSchemaURL, bytes.NewReader(fixturesSchema)); err != nil {
		return fmt.Errorf("failed to load fixture schema: %w", err)
	}
	schema, err := compiler.Compile(fixturesSchemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile fixture schema: %w", err)
	}

	// the schema validator works on generic JSON values
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode seed fixtures: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode seed fixtures: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid seed fixtures: %w", err)
	}
	return nil
}

// DefaultFixtures returns the built-in statuses and labels.
func DefaultFixtures() *Fixtures {
	f, err := ParseFixtures(defaultFixtures, FormatYAML)
	if err != nil {
		// ALLOW-PANIC: the embedded defaults are fixed at build time
		panic(err)
	}
	return f
}

// LoadFixtures reads fixtures from path, or returns the defaults when path is empty.
// The file extension selects YAML (.yaml, .yml) or TOML (.toml).
func LoadFixtures(path string) (*Fixtures, error) {
	if path == "" {
		return DefaultFixtures(), nil
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed fixtures: %w", err)
	}
	return ParseFixtures(data, format)
}
