package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrNoDeliveryConfigured        = errors.New("neither telegram token nor http address is configured")
	ErrUnknownStateBackend         = errors.New("unknown state backend")
)

// State backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`      // current application environment (local, dev, production etc)
	Log      Log      `mapstructure:"log"`      // logging options
	Data     Data     `mapstructure:"data"`     // dataset sources
	Telegram Telegram `mapstructure:"telegram"` // bot delivery
	HTTP     HTTP     `mapstructure:"http"`     // JSON API delivery
	State    State    `mapstructure:"state"`    // persisted app state
	DB       DB       `mapstructure:"database"` // database configuration section
	Redis    Redis    `mapstructure:"redis"`    // redis configuration section
	Quiz     Quiz     `mapstructure:"quiz"`     // quiz defaults
}

type Log struct {
	Level string `mapstructure:"level"` // debug, info, warn, error; empty keeps the environment default
}

type Data struct {
	Path     string `mapstructure:"path"`     // JSON or XLSX dataset file
	Fallback bool   `mapstructure:"fallback"` // fall back to the embedded dataset
}

type Telegram struct {
	Token string `mapstructure:"-"`     // Telegram API token loaded from environment
	Debug bool   `mapstructure:"debug"` // verbose bot API logging
}

type HTTP struct {
	Addr            string        `mapstructure:"addr"` // empty disables the API
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type State struct {
	Backend          string        `mapstructure:"backend"` // memory, file, postgres or redis
	Path             string        `mapstructure:"path"`    // state file of the file backend
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"-"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type Quiz struct {
	DefaultCount int `mapstructure:"default_count"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Telegram.Token = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Password = v.GetString("redis_password")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log.level", "")
	v.SetDefault("data.path", "assets/data/kanji.json")
	v.SetDefault("data.fallback", true)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("state.backend", BackendFile)
	v.SetDefault("state.path", "data/state.json")
	v.SetDefault("state.autosave_interval", "30s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "kanji:")
	v.SetDefault("quiz.default_count", 10)
}

// Validate checks that the configuration can start at least one delivery
// and that the chosen state backend has what it needs.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" && c.HTTP.Addr == "" {
		return ErrNoDeliveryConfigured
	}

	switch c.State.Backend {
	case BackendMemory, BackendRedis:
	case BackendFile:
		if c.State.Path == "" {
			return fmt.Errorf("%w: state.path is required for the file backend", ErrMissingEnvironmentVariables)
		}
	case BackendPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres backend", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStateBackend, c.State.Backend)
	}

	if c.Data.Path == "" && !c.Data.Fallback {
		return fmt.Errorf("%w: data.path is empty and fallback is disabled", ErrMissingEnvironmentVariables)
	}

	return nil
}
