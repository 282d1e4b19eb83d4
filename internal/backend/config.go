package backend

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tartampluch/go-gymtrack/internal/config"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	Secret   string        `yaml:"jwt_secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Config is the YAML configuration of the reference backend.
type Config struct {
	Mode        string         `yaml:"mode"`
	Addr        string         `yaml:"addr"`
	DB          DatabaseConfig `yaml:"database"`
	Auth        AuthConfig     `yaml:"auth"`
	CORSOrigins []string       `yaml:"cors_origins"`
}

// DefaultConfig returns a dev configuration without a secret.
func DefaultConfig() *Config {
	return &Config{
		Mode:        config.BackendModeDev,
		Addr:        config.DefaultBackendAddr,
		DB:          DatabaseConfig{Path: config.DefaultDBPath},
		Auth:        AuthConfig{TokenTTL: config.DefaultTokenTTL},
		CORSOrigins: config.DevCORSOrigins,
	}
}

// LoadConfig reads path over the defaults. The JWT secret may come from the
// environment instead of the file.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrConfigRead, err)
	}
	return ParseConfig(buf)
}

// ParseConfig decodes a YAML document over the defaults and validates it.
func ParseConfig(buf []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrConfigParse, err)
	}
	if env := os.Getenv(config.EnvJWTSecret); env != "" {
		cfg.Auth.Secret = env
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have no usable default.
func (c *Config) Validate() error {
	if c.Mode != config.BackendModeDev && c.Mode != config.BackendModeRelease {
		return fmt.Errorf("%s: %q", config.ErrConfigMode, c.Mode)
	}
	if c.Auth.Secret == "" {
		return errors.New(config.ErrJWTSecret)
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = config.DefaultTokenTTL
	}
	if c.Addr == "" {
		c.Addr = config.DefaultBackendAddr
	}
	return nil
}
