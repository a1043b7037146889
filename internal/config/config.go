// Package config loads the butterfly configuration file.
//
// The file lives at $XDG_CONFIG_HOME/butterfly/config.toml, falling back to
// ~/.config/butterfly/config.toml. Every key can be overridden from the
// environment with a BUTTERFLY_ prefix and underscores for dots, for example
// BUTTERFLY_CACHE_BACKEND=redis. Command-line flags override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/matzehuels/butterfly/pkg/cache"
	"github.com/matzehuels/butterfly/pkg/chart"
	bferrors "github.com/matzehuels/butterfly/pkg/errors"
	"github.com/matzehuels/butterfly/pkg/httputil"
	"github.com/matzehuels/butterfly/pkg/pipeline"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "BUTTERFLY"

// DefaultAddr is the default listen address for the HTTP API.
const DefaultAddr = "127.0.0.1:8080"

// Config is the on-disk configuration.
type Config struct {
	Chart  Chart  `mapstructure:"chart" toml:"chart"`
	Parse  Parse  `mapstructure:"parse" toml:"parse"`
	Cache  Cache  `mapstructure:"cache" toml:"cache"`
	Server Server `mapstructure:"server" toml:"server"`
}

// Chart holds display defaults.
type Chart struct {
	Width            float64 `mapstructure:"width" toml:"width"`
	Height           float64 `mapstructure:"height" toml:"height"`
	BarThickness     float64 `mapstructure:"bar_thickness" toml:"bar_thickness"`
	GapBetweenGroups float64 `mapstructure:"gap_between_groups" toml:"gap_between_groups"`
	ShowValueLabels  bool    `mapstructure:"show_value_labels" toml:"show_value_labels"`
	ShowGrid         bool    `mapstructure:"show_grid" toml:"show_grid"`
	LeftColor        string  `mapstructure:"left_color" toml:"left_color"`
	RightColor       string  `mapstructure:"right_color" toml:"right_color"`
	Format           string  `mapstructure:"format" toml:"format"`
}

// Parse holds ingest defaults.
type Parse struct {
	Header    string `mapstructure:"header" toml:"header"`
	NaN       string `mapstructure:"nan" toml:"nan"`
	Delimiter string `mapstructure:"delimiter" toml:"delimiter"`
}

// Cache selects the source cache backend.
type Cache struct {
	Backend       string        `mapstructure:"backend" toml:"backend"`
	Dir           string        `mapstructure:"dir" toml:"dir,omitempty"`
	TTL           time.Duration `mapstructure:"ttl" toml:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr" toml:"redis_addr,omitempty"`
	RedisPassword string        `mapstructure:"redis_password" toml:"redis_password,omitempty"`
	RedisDB       int           `mapstructure:"redis_db" toml:"redis_db"`
}

// Server configures `butterfly serve`.
type Server struct {
	Addr string `mapstructure:"addr" toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	display := chart.DefaultDisplayConfig()
	appearance := chart.DefaultAppearance()
	return &Config{
		Chart: Chart{
			Width:            pipeline.DefaultWidth,
			Height:           pipeline.DefaultHeight,
			BarThickness:     display.BarThickness,
			GapBetweenGroups: display.GapBetweenGroups,
			ShowValueLabels:  display.ShowValueLabels,
			ShowGrid:         appearance.ShowGrid,
			LeftColor:        appearance.LeftColor,
			RightColor:       appearance.RightColor,
			Format:           pipeline.DefaultFormat,
		},
		Parse: Parse{
			Header:    pipeline.DefaultHeader,
			NaN:       pipeline.DefaultNaN,
			Delimiter: pipeline.DefaultDelimiter,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     httputil.DefaultTTL,
		},
		Server: Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "butterfly", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "butterfly", "config.toml"), nil
}

// Load reads configuration from path, the environment, and the defaults,
// in that order of precedence. An empty path reads the default location,
// where a missing file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, bferrors.Wrap(bferrors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes c to path as TOML, creating parent directories.
func Save(c *Config, path string) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Init writes the default configuration to path unless a file exists there
// and force is false. It reports whether a file was written.
func Init(path string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := Save(Default(), path); err != nil {
		return false, err
	}
	return true, nil
}

// Encode renders c as TOML.
func Encode(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return bferrors.New(bferrors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return bferrors.New(bferrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if err := pipeline.ValidateFormat(c.Chart.Format); err != nil {
		return bferrors.Wrap(bferrors.ErrCodeInvalidConfig, err, "chart.format")
	}
	if err := pipeline.ValidateDelimiter(c.Parse.Delimiter); err != nil {
		return bferrors.Wrap(bferrors.ErrCodeInvalidConfig, err, "parse.delimiter")
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the config.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Header:    c.Parse.Header,
		NaN:       c.Parse.NaN,
		Delimiter: c.Parse.Delimiter,
		Width:     c.Chart.Width,
		Height:    c.Chart.Height,
		Display: chart.DisplayConfig{
			BarThickness:     c.Chart.BarThickness,
			GapBetweenGroups: c.Chart.GapBetweenGroups,
			ShowValueLabels:  c.Chart.ShowValueLabels,
		},
		Appearance: chart.Appearance{
			LeftColor:  c.Chart.LeftColor,
			RightColor: c.Chart.RightColor,
			ShowGrid:   c.Chart.ShowGrid,
		},
		Formats: []string{c.Chart.Format},
	}
}

// CacheConfig returns the cache backend settings. An empty directory
// resolves to [cache.DefaultDir].
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("chart.width", d.Chart.Width)
	v.SetDefault("chart.height", d.Chart.Height)
	v.SetDefault("chart.bar_thickness", d.Chart.BarThickness)
	v.SetDefault("chart.gap_between_groups", d.Chart.GapBetweenGroups)
	v.SetDefault("chart.show_value_labels", d.Chart.ShowValueLabels)
	v.SetDefault("chart.show_grid", d.Chart.ShowGrid)
	v.SetDefault("chart.left_color", d.Chart.LeftColor)
	v.SetDefault("chart.right_color", d.Chart.RightColor)
	v.SetDefault("chart.format", d.Chart.Format)
	v.SetDefault("parse.header", d.Parse.Header)
	v.SetDefault("parse.nan", d.Parse.NaN)
	v.SetDefault("parse.delimiter", d.Parse.Delimiter)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", d.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", d.Cache.RedisDB)
	v.SetDefault("server.addr", d.Server.Addr)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}
