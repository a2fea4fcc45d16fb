// Package config resolves runtime settings from defaults, an optional
// .unsent.yaml file and UNSENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/unsent/pkg/logging"
)

const (
	keyPath     = "path"
	keySource   = "source"
	keyProse    = "prose"
	keyPoems    = "poems"
	keyTimeout  = "timeout"
	keyLogLevel = "log-level"
)

// Config holds runtime settings for the CLI.
type Config struct {
	// Path is the directory of the local key-value store.
	Path string
	// Source is a directory or http(s) base URL holding the archive payloads.
	Source   string
	Prose    string
	Poems    string
	Timeout  time.Duration
	LogLevel string
}

// Load reads the configuration. A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault(keyPath, "~/.unsent")
	v.SetDefault(keySource, "./data")
	v.SetDefault(keyProse, "prose.json")
	v.SetDefault(keyPoems, "poems.json")
	v.SetDefault(keyTimeout, "10s")
	v.SetDefault(keyLogLevel, "warn")

	v.SetConfigName(".unsent") // .yaml is implicit
	v.SetEnvPrefix("UNSENT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("UNSENT_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString(keyPath))
	if err != nil {
		return Config{}, fmt.Errorf("config: expand path: %w", err)
	}

	cfg := Config{
		Path:     path,
		Source:   v.GetString(keySource),
		Prose:    v.GetString(keyProse),
		Poems:    v.GetString(keyPoems),
		Timeout:  v.GetDuration(keyTimeout),
		LogLevel: v.GetString(keyLogLevel),
	}
	if !strings.HasPrefix(cfg.Source, "http://") && !strings.HasPrefix(cfg.Source, "https://") {
		if cfg.Source, err = homedir.Expand(cfg.Source); err != nil {
			return Config{}, fmt.Errorf("config: expand source: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return errors.New("config: path is required")
	}
	if strings.TrimSpace(c.Source) == "" {
		return errors.New("config: source is required")
	}
	if strings.TrimSpace(c.Prose) == "" || strings.TrimSpace(c.Poems) == "" {
		return errors.New("config: prose and poems payload names are required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive: %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
