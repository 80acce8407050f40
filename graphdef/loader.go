package graphdef

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads path and unmarshals it into a GraphDefinition, sniffing
// the unmarshaler from the file extension: .json uses encoding/json,
// .yml/.yaml uses gopkg.in/yaml.v3. Any other extension is
// ErrUnsupportedFileType.
func LoadFile(path string) (*GraphDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphdef: opening %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return LoadJSON(f)
	case ".yml", ".yaml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

// LoadJSON unmarshals r as a JSON GraphDefinition document.
func LoadJSON(r io.Reader) (*GraphDefinition, error) {
	var def GraphDefinition
	if err := json.NewDecoder(r).Decode(&def); err != nil {
		return nil, fmt.Errorf("graphdef: decoding json: %w", err)
	}
	return &def, nil
}

// LoadYAML unmarshals r as a YAML GraphDefinition document.
func LoadYAML(r io.Reader) (*GraphDefinition, error) {
	var def GraphDefinition
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("graphdef: decoding yaml: %w", err)
	}
	return &def, nil
}
