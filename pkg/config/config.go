package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ILESO_"

const (
	HighwayNumeric = "numeric"
	HighwayCatalog = "catalog"
)

// DefaultEndpoint is the public prediction endpoint.
const DefaultEndpoint = "https://backend-aprendizado-de-maquinas-production.up.railway.app/prever"

// Config is the runtime configuration shared by the commands.
type Config struct {
	Endpoint      string        `yaml:"endpoint"`
	Timeout       time.Duration `yaml:"timeout"`
	HighwayMode   string        `yaml:"highway_mode"`
	StrictEnums   bool          `yaml:"strict_enums"`
	SkipContract  bool          `yaml:"skip_contract"`
	Locale        string        `yaml:"locale"`
	FailureNotice bool          `yaml:"failure_notice"`
	Log           LogConfig     `yaml:"log"`
	Server        ServerConfig  `yaml:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	BasePath        string        `yaml:"base_path"`
	Theme           string        `yaml:"theme"`
	Variant         string        `yaml:"variant"`
	Notice          string        `yaml:"notice"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint:    DefaultEndpoint,
		Timeout:     30 * time.Second,
		HighwayMode: HighwayNumeric,
		Locale:      "pt-BR",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Theme:           "ileso",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load layers the YAML file at path (if any) over Default, then applies
// environment overrides read through lookup. A nil lookup reads the process
// environment.
func Load(path string, lookup LookupFunc) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode unmarshals YAML over cfg, rejecting unknown keys.
func Decode(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from ILESO_* variables. ILESO_DEBUG=1 forces the
// debug log level.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []error
	dur := func(name string, dst *time.Duration) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
			return
		}
		*dst = d
	}
	boolean := func(name string, dst *bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
			return
		}
		*dst = b
	}

	str("ENDPOINT", &c.Endpoint)
	dur("TIMEOUT", &c.Timeout)
	str("HIGHWAY_MODE", &c.HighwayMode)
	boolean("STRICT_ENUMS", &c.StrictEnums)
	boolean("SKIP_CONTRACT", &c.SkipContract)
	str("LOCALE", &c.Locale)
	boolean("FAILURE_NOTICE", &c.FailureNotice)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("ADDR", &c.Server.Addr)
	str("BASE_PATH", &c.Server.BasePath)
	str("THEME", &c.Server.Theme)
	str("VARIANT", &c.Server.Variant)
	str("NOTICE", &c.Server.Notice)
	dur("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)

	if v, ok := lookup(EnvPrefix + "DEBUG"); ok && v == "1" {
		c.Log.Level = "debug"
	}
	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("config: endpoint %q must be an absolute http(s) URL", c.Endpoint))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("config: timeout must not be negative"))
	}
	switch c.HighwayMode {
	case HighwayNumeric, HighwayCatalog:
	default:
		errs = append(errs, fmt.Errorf("config: highway_mode %q must be %q or %q", c.HighwayMode, HighwayNumeric, HighwayCatalog))
	}
	if strings.TrimSpace(c.Locale) == "" {
		errs = append(errs, fmt.Errorf("config: locale is required"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: log.format %q must be text or json", c.Log.Format))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("config: server.shutdown_timeout must not be negative"))
	}
	return errors.Join(errs...)
}
