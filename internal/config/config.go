package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings used to register resolved thresholds as metric alarms.
type Config struct {
	// Namespace is the metric namespace the alarms watch.
	Namespace string `yaml:"namespace"`
	// AlarmPrefix is prepended to the kind name to form the alarm name.
	AlarmPrefix string `yaml:"alarm_prefix"`
	// Dimensions narrow the metrics to the monitored service.
	Dimensions map[string]string `yaml:"dimensions"`
	// AlarmActions are notified when an alarm enters the ALARM state.
	AlarmActions []string `yaml:"alarm_actions"`
	// OKActions are notified when an alarm returns to the OK state.
	OKActions []string `yaml:"ok_actions"`
	// Region overrides the region from the default credential chain.
	Region string `yaml:"region"`
	// Timeout is the duration of each registration call.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for registration settings.
	DefaultConfigFilename = "alarm-thresholds-settings.yaml"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNamespaceRequired is returned when the metric namespace is missing.
	errNamespaceRequired = errors.New("metric namespace must be provided")
	// errEmptyDimension is returned when a dimension has an empty name or value.
	errEmptyDimension = errors.New("dimension name and value must not be empty")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the provided settings for required fields and fills in defaults.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.Namespace == "" {
		return errNamespaceRequired
	}

	for name, value := range settings.Dimensions {
		if name == "" || value == "" {
			return fmt.Errorf("dimension %q: %w", name, errEmptyDimension)
		}
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	return nil
}
