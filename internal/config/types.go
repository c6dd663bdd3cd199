package config

import (
	"fmt"
	"time"

	"github.com/BenedictTTM/qualipro/internal/ui"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = ".qualipro.yml"

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: QUALIPRO_UI__HEADER_THRESHOLD sets ui.header_threshold.
const EnvPrefix = "QUALIPRO_"

// Config is the top-level qualipro configuration, corresponding to .qualipro.yml.
type Config struct {
	Port           int           `yaml:"port" koanf:"port"`
	BaseURL        string        `yaml:"base_url" koanf:"base_url"`
	Dev            bool          `yaml:"dev" koanf:"dev"`
	ContentFile    string        `yaml:"content_file" koanf:"content_file"`
	PublicDir      string        `yaml:"public_dir" koanf:"public_dir"`
	OutputDir      string        `yaml:"output_dir" koanf:"output_dir"`
	Include        []string      `yaml:"include" koanf:"include"`
	Exclude        []string      `yaml:"exclude" koanf:"exclude"`
	IntroVideoURL  string        `yaml:"intro_video_url" koanf:"intro_video_url"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	CORS           CORSConfig    `yaml:"cors" koanf:"cors"`
	UI             ui.Config     `yaml:"ui" koanf:"ui"`
}

// CORSConfig controls cross-origin access to the static asset routes.
type CORSConfig struct {
	AllowAll       bool     `yaml:"allow_all" koanf:"allow_all"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DefaultExcludes are public-asset patterns never exported.
var DefaultExcludes = []string{
	"**/.*",
	"**/*.psd",
	"**/*.sketch",
	"**/Thumbs.db",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		BaseURL:        "https://www.qualiproconsult.com",
		PublicDir:      "public",
		OutputDir:      "dist",
		Include:        []string{"**"},
		Exclude:        append([]string(nil), DefaultExcludes...),
		RequestTimeout: 60 * time.Second,
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		UI: ui.DefaultConfig(),
	}
}
