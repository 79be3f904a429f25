package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	fileName  = "odoo-buddy"
	envPrefix = "ODOO_BUDDY"
)

// Backends accepted by store.backend.
var Backends = []string{"file", "memory", "redis", "nats", "postgres", "keyring"}

// Codecs accepted by codec.
var Codecs = []string{"json", "cbor", "msgpack"}

type Config struct {
	Prefix   string      `mapstructure:"prefix"`
	LogLevel string      `mapstructure:"log_level"`
	Codec    string      `mapstructure:"codec"`
	Metrics  bool        `mapstructure:"metrics"`
	Store    StoreConfig `mapstructure:"store"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	File    struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"file"`
	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	NATS struct {
		URL    string `mapstructure:"url"`
		Bucket string `mapstructure:"bucket"`
	} `mapstructure:"nats"`
	Postgres struct {
		DSN   string `mapstructure:"dsn"`
		Table string `mapstructure:"table"`
	} `mapstructure:"postgres"`
	Keyring struct {
		Service string `mapstructure:"service"`
	} `mapstructure:"keyring"`
}

// New returns a viper instance with defaults, search paths and env binding
// set up. Callers may bind flags to it before calling Load.
func New(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, fileName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("prefix", "odoo-buddy-")
	v.SetDefault("log_level", "info")
	v.SetDefault("codec", "json")
	v.SetDefault("metrics", false)
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.file.path", defaultFilePath())
	v.SetDefault("store.redis.address", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("store.nats.bucket", "odoo_buddy")
	v.SetDefault("store.postgres.dsn", "")
	v.SetDefault("store.postgres.table", "odoo_buddy_settings")
	v.SetDefault("store.keyring.service", "odoo-buddy")
	return v
}

// Load reads the config file (a missing file is fine unless it was named
// explicitly) and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("config: prefix must not be empty")
	}
	if !slices.Contains(Backends, c.Store.Backend) {
		return fmt.Errorf("config: unknown store.backend %q (want one of %s)", c.Store.Backend, strings.Join(Backends, ", "))
	}
	if !slices.Contains(Codecs, c.Codec) {
		return fmt.Errorf("config: unknown codec %q (want one of %s)", c.Codec, strings.Join(Codecs, ", "))
	}
	switch c.Store.Backend {
	case "file":
		if c.Store.File.Path == "" {
			return errors.New("config: store.file.path is required")
		}
	case "postgres":
		if c.Store.Postgres.DSN == "" {
			return errors.New("config: store.postgres.dsn is required")
		}
	}
	return nil
}

// NewLogger builds the console logger. An unparsable level falls back to info
// with a warning.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()

	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		} else {
			logger.Warn().Str("invalid_level", level).Msg("Invalid log level, using default 'info'")
		}
	}
	return logger.Level(lvl)
}

func defaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", fileName+"-storage.json")
	}
	return filepath.Join(dir, fileName, "storage.json")
}
