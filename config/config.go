// Package config loads the sctpcat configuration file.
//
// A configuration names endpoints so that commands can refer to them by a
// short name instead of a full URI:
//
//	log_level = "debug"
//	buffer_size = 4096
//
//	[endpoints.server]
//	uri = "sctp://0.0.0.0:9000?listen&max_streams=4&reuse"
//	description = "local test listener"
//
// The same keys are accepted in YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/sctplink/limits"
	"github.com/opd-ai/sctplink/sctp"
)

// Log formats understood by the command-line tool.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the command-line tool settings.
type Config struct {
	LogLevel   string              `toml:"log_level" yaml:"log_level"`
	LogFormat  string              `toml:"log_format" yaml:"log_format"`
	BufferSize int                 `toml:"buffer_size" yaml:"buffer_size"`
	NonBlock   bool                `toml:"nonblock" yaml:"nonblock"`
	Endpoints  map[string]Endpoint `toml:"endpoints" yaml:"endpoints"`
}

// Endpoint is a named session URI.
type Endpoint struct {
	URI         string `toml:"uri" yaml:"uri"`
	Description string `toml:"description" yaml:"description"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  FormatText,
		BufferSize: limits.DefaultMessageBuffer,
		Endpoints:  map[string]Endpoint{},
	}
}

// Load reads path over the defaults and validates the result. The format
// follows the file extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := loadToml(path, cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := loadYaml(path, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("config load failed (%s): unsupported format %q", path, ext)
	}

	if cfg.Endpoints == nil {
		cfg.Endpoints = map[string]Endpoint{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func loadToml(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func loadYaml(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

// Validate checks the log settings, the buffer size and every endpoint URI.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("log_format: must be %q or %q, got %q", FormatText, FormatJSON, c.LogFormat)
	}
	if err := limits.ValidateBufferSize(c.BufferSize); err != nil {
		return fmt.Errorf("buffer_size: %w", err)
	}
	for _, name := range c.Names() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("endpoint name is required")
		}
		if _, err := sctp.ParseURI(c.Endpoints[name].URI); err != nil {
			return fmt.Errorf("endpoint %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the endpoint names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Endpoints))
	for name := range c.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps an endpoint name to its URI. Arguments that already carry
// the sctp scheme are returned unchanged.
func (c *Config) Resolve(nameOrURI string) (string, error) {
	if strings.HasPrefix(nameOrURI, sctp.Scheme+"://") {
		return nameOrURI, nil
	}
	ep, ok := c.Endpoints[nameOrURI]
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", nameOrURI)
	}
	return ep.URI, nil
}

// ApplyLogging configures the standard logrus logger from c.
func (c *Config) ApplyLogging() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	logrus.SetLevel(level)

	if c.LogFormat == FormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
