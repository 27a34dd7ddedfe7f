package completion

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmbeddedPath names the built-in manifest in errors.
const EmbeddedPath = "<embedded>/builtins.yaml"

//go:embed builtins.yaml
var embeddedManifest []byte

// Manifest is the builtins.yaml structure: the fixed set of names offered
// by completion.
type Manifest struct {
	Version  string    `yaml:"version"`
	Builtins []Builtin `yaml:"builtins"`

	// Internal fields
	path string
}

// Builtin is one completion candidate.
type Builtin struct {
	Label string `yaml:"label"`
	// Kind is one of keyword, function, class or snippet.
	Kind string `yaml:"kind"`
	// Insert is the inserted text; snippet placeholders like $1 are allowed.
	// Empty means the label itself.
	Insert string `yaml:"insert"`
	Detail string `yaml:"detail"`
}

var validKinds = map[string]bool{
	"keyword":  true,
	"function": true,
	"class":    true,
	"snippet":  true,
}

// ParseManifest reads, parses and validates a builtins file.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestNotFoundError{
			Path: path,
			Err:  err,
		}
	}
	return parseManifest(path, data)
}

// DefaultManifest returns the manifest compiled into the binary.
func DefaultManifest() (*Manifest, error) {
	return parseManifest(EmbeddedPath, embeddedManifest)
}

func parseManifest(path string, data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestParseError{
			Path: path,
			Err:  err,
		}
	}

	m.path = path

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest fields.
func (m *Manifest) Validate() error {
	if len(m.Builtins) == 0 {
		return &ManifestValidationError{
			Path:    m.path,
			Field:   "builtins",
			Message: "at least one builtin is required",
		}
	}

	seen := make(map[string]bool, len(m.Builtins))
	for i, b := range m.Builtins {
		field := fmt.Sprintf("builtins[%d]", i)
		if strings.TrimSpace(b.Label) == "" {
			return &ManifestValidationError{
				Path:    m.path,
				Field:   field + ".label",
				Message: "label is required",
			}
		}
		if !validKinds[b.Kind] {
			return &ManifestValidationError{
				Path:    m.path,
				Field:   field + ".kind",
				Message: fmt.Sprintf("unknown kind: %s (must be one of: keyword, function, class, snippet)", b.Kind),
			}
		}
		if seen[b.Label] {
			return &ManifestValidationError{
				Path:    m.path,
				Field:   field + ".label",
				Message: fmt.Sprintf("duplicate label: %s", b.Label),
			}
		}
		seen[b.Label] = true
	}

	return nil
}

// Path returns where the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}
