// Package config loads the server settings from defaults and an optional
// TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the TCP port the server listens on when none is configured.
const DefaultPort = 8080

// DefaultRoutes are the path patterns bound to the file responder.
// "/piano.js" is already covered by "/" and is kept for parity with the
// routes the piano page has always been served from.
var DefaultRoutes = []string{"/", "/piano.js"}

var (
	// ErrInvalidPort is returned when the port is outside 1-65535.
	ErrInvalidPort = errors.New("port must be between 1 and 65535")
	// ErrEmptyIndex is returned when the index document name is empty.
	ErrEmptyIndex = errors.New("index document name must not be empty")
	// ErrInvalidRoute is returned when a route is not a literal path
	// starting with "/".
	ErrInvalidRoute = errors.New("route must be a literal path starting with /")
	// ErrNoRoutes is returned when no route is configured.
	ErrNoRoutes = errors.New("at least one route is required")
	// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config file format")
)

// Config holds the server settings.
type Config struct {
	// Port is the TCP port to listen on.
	Port int `toml:"port" yaml:"port"`
	// Root is the serving root. Request paths are resolved relative to it.
	Root string `toml:"root" yaml:"root"`
	// Index is the document served for "/".
	Index string `toml:"index" yaml:"index"`
	// Routes lists the literal paths served. A route ending in "/" covers
	// every path below it. All of them reach the same file responder.
	Routes []string `toml:"routes" yaml:"routes"`
	// LogRequests enables a "METHOD PATH" log line per request.
	LogRequests bool `toml:"log_requests" yaml:"log_requests"`
	// Color enables colored startup output.
	Color bool `toml:"color" yaml:"color"`
}

// Default returns the settings used when no config file is given: port 8080,
// the working directory as serving root and index.html as index document.
func Default() Config {
	return Config{
		Port:   DefaultPort,
		Root:   ".",
		Index:  "index.html",
		Routes: append([]string(nil), DefaultRoutes...),
		Color:  true,
	}
}

// Load reads the config file at path on top of Default. The format is picked
// from the file extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the settings for values the server cannot start with.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.Index == "" {
		return ErrEmptyIndex
	}
	if len(c.Routes) == 0 {
		return ErrNoRoutes
	}
	for _, r := range c.Routes {
		if !strings.HasPrefix(r, "/") || strings.ContainsAny(r, "{} \t\r\n?#") {
			return fmt.Errorf("%w: %q", ErrInvalidRoute, r)
		}
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
