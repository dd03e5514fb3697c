package lifecycle

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefinition loads a lifecycle definition from a YAML file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %q: %w", path, err)
	}

	return LoadDefinitionFromBytes(data)
}

// LoadDefinitionFromBytes loads a lifecycle definition from YAML bytes.
func LoadDefinitionFromBytes(data []byte) (*Definition, error) {
	var def Definition

	err := yaml.Unmarshal(data, &def)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = def.Validate()
	if err != nil {
		return nil, WrapDefinitionError(def.Name, err)
	}

	return &def, nil
}

// LoadDefinitionFromFS loads a definition from an embedded filesystem.
// This is a convenience function for loading from embed.FS.
func LoadDefinitionFromFS(fsys fs.FS, path string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition from FS: %w", err)
	}

	return LoadDefinitionFromBytes(data)
}
