// Package config loads chromepdf settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/chromepdf/config.toml (falling back to
// ~/.config/chromepdf/config.toml). A missing default file is not an error;
// every key has a default:
//
//	api_url      = "https://chrome.browserless.io"
//	api_key      = ""
//	endpoint     = "/chrome/pdf"
//	http_timeout = "0s"   # no client-side timeout
//	retries      = 0
//
//	[cache]
//	backend        = "none"   # none, file or redis
//	ttl            = "24h"
//	dir            = ""       # file backend; defaults to the user cache dir
//	redis_addr     = "localhost:6379"
//	redis_password = ""
//	redis_db       = 0
//
//	[server]
//	addr = ":8080"
//
//	[options]
//	format = "Letter"
//	margin = ["1cm", "2cm"]
//
// CHROMEPDF_API_KEY, CHROMEPDF_API_URL and CHROMEPDF_ENDPOINT override the
// file.
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromepdf/pkg/cache"
	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/integrations"
	"github.com/matzehuels/chromepdf/pkg/integrations/browserless"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

const appName = "chromepdf"

// Environment variables that override file values.
const (
	EnvAPIKey   = "CHROMEPDF_API_KEY"
	EnvAPIURL   = "CHROMEPDF_API_URL"
	EnvEndpoint = "CHROMEPDF_ENDPOINT"
)

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the complete configuration.
type Config struct {
	APIURL      string        `toml:"api_url"`
	APIKey      string        `toml:"api_key"`
	Endpoint    string        `toml:"endpoint"`
	HTTPTimeout time.Duration `toml:"http_timeout"`
	Retries     int           `toml:"retries"`

	Cache   CacheConfig  `toml:"cache"`
	Server  ServerConfig `toml:"server"`
	Options pdf.Settings `toml:"options"`
}

// CacheConfig selects and configures the render cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
}

// ServerConfig configures the relay server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIURL:   browserless.DefaultAPIURL,
		Endpoint: browserless.PDFEndpoint,
		Cache: CacheConfig{
			Backend:   BackendNone,
			TTL:       24 * time.Hour,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads path, or the default location when path is empty, applies
// environment overrides and validates the result. An explicitly named file
// must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "locate config file")
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case err == nil:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	case os.IsNotExist(err) && !explicit:
		// defaults
	case os.IsNotExist(err):
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", path)
	default:
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
}

// Validate checks values the client and cache cannot work with.
func (c *Config) Validate() error {
	if err := errs.ValidateURL(c.APIURL); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "api_url")
	}
	if c.HTTPTimeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "http_timeout cannot be negative")
	}
	if c.Retries < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "retries cannot be negative")
	}
	switch c.Cache.Backend {
	case "", BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (want none, file or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if err := c.Options.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "options")
	}
	return nil
}

// OpenCache opens the configured cache backend. The caller closes it.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendFile:
		dir := c.Cache.Dir
		if dir == "" {
			d, err := CacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		})
	default:
		return cache.NewNullCache(), nil
	}
}

// NewClient builds a browserless client whose live options start from the
// [options] table. It returns the opened cache so the caller can close it.
func (c *Config) NewClient(ctx context.Context, logger *log.Logger) (*browserless.Client, cache.Cache, error) {
	store, err := c.OpenCache(ctx)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "open %s cache", c.Cache.Backend)
	}
	client := browserless.NewClient(c.APIKey,
		browserless.WithAPIURL(c.APIURL),
		browserless.WithEndpoint(c.Endpoint),
		browserless.WithHTTPClient(integrations.NewHTTPClient(c.HTTPTimeout)),
		browserless.WithRetries(c.Retries),
		browserless.WithCache(store, c.Cache.TTL),
		browserless.WithOptions(c.Options.Apply(pdf.New())),
		browserless.WithLogger(logger),
	)
	return client, store, nil
}

// Redacted returns a copy safe for display.
func (c *Config) Redacted() *Config {
	out := *c
	if out.APIKey != "" {
		out.APIKey = "********"
	}
	if out.Cache.RedisPassword != "" {
		out.Cache.RedisPassword = "********"
	}
	return &out
}
