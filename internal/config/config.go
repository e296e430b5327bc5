package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the binary reads from the environment.
type Config struct {
	APIURL string
	Listen string
	Theme  string
	Log    LogConfig
}

// LogConfig holds operator log settings.
type LogConfig struct {
	File  string
	Level string // debug, info, warn, error
}

// Overrides are command-line values. Non-empty fields win over the
// environment and are applied before validation.
type Overrides struct {
	APIURL string
	Theme  string
}

// Load reads CATALOG_* environment variables over built-in defaults, then
// applies o.
func Load(o Overrides) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("catalog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("listen", ":8080")
	v.SetDefault("theme", "classic")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "catalog.log"))
	v.SetDefault("log.level", "info")

	if o.APIURL != "" {
		v.Set("api_url", o.APIURL)
	}
	if o.Theme != "" {
		v.Set("theme", o.Theme)
	}

	cfg := &Config{
		APIURL: v.GetString("api_url"),
		Listen: v.GetString("listen"),
		Theme:  v.GetString("theme"),
		Log: LogConfig{
			File:  v.GetString("log.file"),
			Level: v.GetString("log.level"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes the API URL and rejects anything that is not an
// absolute http(s) URL.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api url %q: must be an absolute http(s) URL", c.APIURL)
	}
	return nil
}
