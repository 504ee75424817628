// Package config loads hxdemo settings: defaults, then an optional YAML
// file, then HXDEMO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr    string        `yaml:"addr"`
	Key     string        `yaml:"key"`
	Log     LogConfig     `yaml:"log"`
	Todos   TodosConfig   `yaml:"todos"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TodosConfig struct {
	// BaseURL is the remote todo source; requests go to BaseURL/todos.
	// Empty means the stub served on Addr.
	BaseURL      string        `yaml:"base_url"`
	DefaultLimit int           `yaml:"default_limit"`
	Timeout      time.Duration `yaml:"timeout"`
	// Stub serves a seeded todo source at /api/todos.
	Stub bool `yaml:"stub"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr: ":8080",
		Log:  LogConfig{Level: "info", Format: "text"},
		Todos: TodosConfig{
			DefaultLimit: 10,
			Timeout:      10 * time.Second,
			Stub:         true,
		},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load reads path over the defaults, applies the environment and validates
// the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	str("HXDEMO_ADDR", &c.Addr)
	str("HXDEMO_KEY", &c.Key)
	str("HXDEMO_LOG_LEVEL", &c.Log.Level)
	str("HXDEMO_LOG_FORMAT", &c.Log.Format)
	str("HXDEMO_TODOS_BASE_URL", &c.Todos.BaseURL)

	if v, ok := lookup("HXDEMO_TODOS_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: HXDEMO_TODOS_LIMIT: %w", err)
		}
		c.Todos.DefaultLimit = n
	}
	if v, ok := lookup("HXDEMO_TODOS_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: HXDEMO_TODOS_TIMEOUT: %w", err)
		}
		c.Todos.Timeout = d
	}
	if v, ok := lookup("HXDEMO_TODOS_STUB"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: HXDEMO_TODOS_STUB: %w", err)
		}
		c.Todos.Stub = b
	}
	return nil
}

// TodosBaseURL returns Todos.BaseURL, or the stub's URL on Addr when no base
// URL is set. Wildcard listen hosts resolve to localhost.
func (c Config) TodosBaseURL() string {
	if c.Todos.BaseURL != "" {
		return c.Todos.BaseURL
	}
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil || port == "" {
		return ""
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/api"
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}
	switch {
	case c.Todos.BaseURL != "":
		if u, err := url.Parse(c.Todos.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("todos.base_url %q must be an absolute http(s) URL", c.Todos.BaseURL))
		}
	case !c.Todos.Stub:
		errs = append(errs, errors.New("todos.base_url is required when todos.stub is off"))
	case c.TodosBaseURL() == "":
		errs = append(errs, fmt.Errorf("todos.base_url cannot be derived from addr %q", c.Addr))
	}
	if c.Todos.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("todos.default_limit must be positive, got %d", c.Todos.DefaultLimit))
	}
	if c.Todos.Timeout < 0 {
		errs = append(errs, fmt.Errorf("todos.timeout must not be negative, got %s", c.Todos.Timeout))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path %q must start with /", c.Metrics.Path))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
