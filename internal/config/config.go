package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "docsite.yaml"

const envPrefix = "DOCSITE_"

// Config is the runtime configuration of the docs server.
type Config struct {
	Addr       string  `koanf:"addr" yaml:"addr"`
	ContentDir string  `koanf:"content_dir" yaml:"content_dir"`
	SiteName   string  `koanf:"site_name" yaml:"site_name"`
	BaseURL    string  `koanf:"base_url" yaml:"base_url"`
	Dev        bool    `koanf:"dev" yaml:"dev"`
	LogLevel   string  `koanf:"log_level" yaml:"log_level"`
	Session    Session `koanf:"session" yaml:"session"`
}

// Session configures the session cookie and the shell registry.
type Session struct {
	// HashKey and BlockKey are base64 encoded. Empty keys are generated at
	// startup, which invalidates sessions on restart.
	HashKey     string        `koanf:"hash_key" yaml:"hash_key"`
	BlockKey    string        `koanf:"block_key" yaml:"block_key"`
	CookieName  string        `koanf:"cookie_name" yaml:"cookie_name"`
	Secure      bool          `koanf:"secure" yaml:"secure"`
	TTL         time.Duration `koanf:"ttl" yaml:"ttl"`
	MaxSessions int           `koanf:"max_sessions" yaml:"max_sessions"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:       ":8080",
		ContentDir: "content",
		SiteName:   "Stitches",
		LogLevel:   "info",
		Session: Session{
			CookieName:  "docsite_session",
			TTL:         30 * time.Minute,
			MaxSessions: 10000,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCSITE_*). A missing file is not an error.
// Nested keys use a double underscore: DOCSITE_SESSION__TTL -> session.ttl.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if strings.TrimSpace(c.ContentDir) == "" {
		errs = append(errs, errors.New("content_dir is required"))
	}
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Session.MaxSessions <= 0 {
		errs = append(errs, errors.New("session.max_sessions must be positive"))
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}
	if _, err := decodeKey(c.Session.HashKey, 32, 64); err != nil {
		errs = append(errs, fmt.Errorf("session.hash_key: %w", err))
	}
	if _, err := decodeKey(c.Session.BlockKey, 16, 24, 32); err != nil {
		errs = append(errs, fmt.Errorf("session.block_key: %w", err))
	}
	return errors.Join(errs...)
}

// DecodedHashKey returns the decoded cookie signing key, or nil when unset.
func (s Session) DecodedHashKey() []byte {
	b, _ := decodeKey(s.HashKey, 32, 64)
	return b
}

// DecodedBlockKey returns the decoded cookie encryption key, or nil when unset.
func (s Session) DecodedBlockKey() []byte {
	b, _ := decodeKey(s.BlockKey, 16, 24, 32)
	return b
}

func decodeKey(v string, sizes ...int) ([]byte, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	for _, n := range sizes {
		if len(b) == n {
			return b, nil
		}
	}
	return nil, fmt.Errorf("unexpected key length %d", len(b))
}
