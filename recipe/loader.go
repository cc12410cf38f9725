package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/linqkit/errors"
)

// Loader loads recipe definitions by name.
type Loader interface {
	Load(name string) (*Recipe, error)
}

// FileLoader loads recipes from YAML files on disk.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader that searches the given directories for
// recipe files.
func NewFileLoader(dirs ...string) Loader {
	return &FileLoader{dirs: dirs}
}

// Load searches for {name}.yaml, then {name}.yml, in each directory.
// A name that is itself a readable file path is loaded directly.
func (l *FileLoader) Load(name string) (*Recipe, error) {
	if _, err := os.Stat(name); err == nil {
		return LoadFile(name)
	}
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			return LoadFile(path)
		}
	}
	return nil, fmt.Errorf("recipe: %q not found in %v", name, l.dirs)
}

// LoadFile reads and parses one recipe file. JSON files are accepted too.
func LoadFile(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a recipe document. source names the document in errors.
func Parse(data []byte, source string) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.InvalidFormat(source, err)
	}
	if r.Name == "" {
		r.Name = nameFromSource(source)
	}
	return &r, nil
}

func nameFromSource(source string) string {
	base := filepath.Base(source)
	return base[:len(base)-len(filepath.Ext(base))]
}
