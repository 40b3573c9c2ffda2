package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable, e.g. MERGINGTON_ADDR.
const EnvPrefix = "MERGINGTON"

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	StaticDir       string
	SeedFile        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file, then environment variables, falling back
// to defaults. Real environment variables win over .env entries.
func Load() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8000")
	v.SetDefault("static_dir", "")
	v.SetDefault("seed_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("shutdown_timeout", "10s")
	return v
}

// FromViper builds and validates a Server config from v.
func FromViper(v *viper.Viper) (Server, error) {
	cfg := Server{
		Addr:            v.GetString("addr"),
		StaticDir:       v.GetString("static_dir"),
		SeedFile:        v.GetString("seed_file"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       strings.ToLower(v.GetString("log_format")),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
	if err := cfg.validate(); err != nil {
		return Server{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Server) validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be a positive duration")
	}
	return nil
}
