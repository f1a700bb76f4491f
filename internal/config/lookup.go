package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Lookup reads one configuration key. It reports false when the key is absent.
type Lookup func(key string) (string, bool)

var (
	// errEnvFileNotMapping is returned when the env file root is not a YAML mapping.
	errEnvFileNotMapping = errors.New("env file must be a mapping of keys to scalar values")
	// errEnvFileNotScalar is returned when a value in the env file is a list or mapping.
	errEnvFileNotScalar = errors.New("value must be a scalar")
	// errEnvFileKeyNotScalar is returned when a key in the env file is a list or mapping.
	errEnvFileKeyNotScalar = errors.New("key must be a scalar")
	// errEnvFileDuplicateKey is returned when the env file defines a key twice.
	errEnvFileDuplicateKey = errors.New("key is defined more than once")
)

// Environ returns a Lookup backed by the process environment.
func Environ() Lookup {
	return os.LookupEnv
}

// FromMap returns a Lookup backed by a copy of the provided map.
func FromMap(values map[string]string) Lookup {
	snapshot := maps.Clone(values)

	return func(key string) (string, bool) {
		value, ok := snapshot[key]

		return value, ok
	}
}

// Chain returns a Lookup that asks each source in order and returns the first hit.
func Chain(lookups ...Lookup) Lookup {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if lookup == nil {
				continue
			}

			if value, ok := lookup(key); ok {
				return value, true
			}
		}

		return "", false
	}
}

// LoadEnvFile reads a YAML mapping of configuration keys to scalar values.
// Scalars keep their textual form ("5." stays "5.") and null values are treated as absent.
// Keys must be scalars and appear once.
func LoadEnvFile(path string) (map[string]string, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}

	var document yaml.Node
	if err = yaml.Unmarshal(contents, &document); err != nil {
		return nil, fmt.Errorf("unmarshal env file: %w", err)
	}

	// Empty file.
	if len(document.Content) == 0 {
		return map[string]string{}, nil
	}

	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errEnvFileNotMapping
	}

	values := make(map[string]string, len(root.Content)/2)
	seen := make(map[string]int, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("env file line %d: %w", key.Line, errEnvFileKeyNotScalar)
		}

		if line, ok := seen[key.Value]; ok {
			return nil, fmt.Errorf("env file key %s on line %d, first on line %d: %w",
				key.Value, key.Line, line, errEnvFileDuplicateKey)
		}

		seen[key.Value] = key.Line

		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}

		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("env file key %s: %w", key.Value, errEnvFileNotScalar)
		}

		if value.ShortTag() == "!!null" {
			continue
		}

		values[key.Value] = value.Value
	}

	return values, nil
}

// NewLookup returns the lookup used by the binaries: entries of envFile, when
// set, take precedence over the process environment.
func NewLookup(envFile string) (Lookup, error) {
	if envFile == "" {
		return Environ(), nil
	}

	values, err := LoadEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	return Chain(FromMap(values), Environ()), nil
}
