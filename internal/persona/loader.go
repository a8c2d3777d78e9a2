package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a persona file:
//
//	personas:
//	  coach:
//	    name: Coach
//	    tone: stern
type file struct {
	Personas map[string]Config `yaml:"personas" toml:"personas"`
}

// LoadFile reads persona definitions from a YAML (.yaml, .yml) or TOML (.toml) file
func LoadFile(path string) (map[string]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes persona definitions; ext selects the format.
func Parse(data []byte, ext string) (map[string]Config, error) {
	var f file

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse persona YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse persona TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported persona file extension %q", ext)
	}

	for id := range f.Personas {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("persona file contains an empty persona id")
		}
	}

	return f.Personas, nil
}

// RegisterFile loads path and registers every persona in it, returning the
// number registered.
func RegisterFile(r *Registry, path string) (int, error) {
	configs, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	for id, cfg := range configs {
		r.Register(id, cfg)
	}
	return len(configs), nil
}
