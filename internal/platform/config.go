package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the project configuration read from .strops.yaml / .strops.toml.
// Command-line flags take precedence over every field.
type Config struct {
	Normalize bool     `yaml:"normalize" toml:"normalize"`
	Format    string   `yaml:"format" toml:"format"`
	Patterns  []string `yaml:"patterns" toml:"patterns"`
	Ignore    []string `yaml:"ignore" toml:"ignore"`
	OutDir    string   `yaml:"out_dir" toml:"out_dir"`
	Debounce  string   `yaml:"debounce" toml:"debounce"`
	Listen    string   `yaml:"listen" toml:"listen"`
	LogLevel  string   `yaml:"log_level" toml:"log_level"`
	LogFormat string   `yaml:"log_format" toml:"log_format"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		Format:    "text",
		Debounce:  "200ms",
		Listen:    ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DebounceDuration parses Debounce. An empty value yields zero.
func (c Config) DebounceDuration() (time.Duration, error) {
	if c.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce %q: %w", c.Debounce, err)
	}
	return d, nil
}

// LoadConfig reads the config file at path. Fields missing from the file
// keep their DefaultConfig values; unknown fields are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("invalid yaml config %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("invalid toml config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return cfg, fmt.Errorf("invalid toml config %s: unknown fields %s", path, strings.Join(keys, ", "))
		}
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", path)
	}

	return cfg, nil
}

// ResolveConfig loads explicitPath when set, otherwise the nearest config
// found from startDir upwards. It returns the path used ("" for defaults).
func ResolveConfig(startDir, explicitPath string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := LoadConfig(explicitPath)
		return cfg, explicitPath, err
	}

	path, err := FindConfig(startDir)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), "", nil
	}
	if err != nil {
		return DefaultConfig(), "", err
	}

	cfg, err := LoadConfig(path)
	return cfg, path, err
}
