package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	State   StateConfig   `mapstructure:"state"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RateRPS      float64       `mapstructure:"rate_rps"`
	RateBurst    int           `mapstructure:"rate_burst"`
}

// BackendConfig points at the external healthcare API. The base URL lives
// here and nowhere else; pages never embed their own copy.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// StateConfig configures the per-user persistent state store. An empty DSN
// keeps everything in process memory.
type StateConfig struct {
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// envOverrides mirrors the settings operators most often need to change
// without touching the config file.
type envOverrides struct {
	Port          int    `envconfig:"PORT"`
	BackendURL    string `envconfig:"BACKEND_URL"`
	SessionSecret string `envconfig:"SESSION_SECRET"`
	RedisURL      string `envconfig:"REDIS_URL"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`
}

// Load reads config.yaml and applies environment overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.rate_rps", 20.0)
	viper.SetDefault("server.rate_burst", 40)
	viper.SetDefault("backend.timeout", 30*time.Second)
	viper.SetDefault("session.cookie_name", "ayursync_session")
	viper.SetDefault("session.ttl", 12*time.Hour)
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("ayursync", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.BackendURL != "" {
		cfg.Backend.BaseURL = env.BackendURL
	}
	if env.SessionSecret != "" {
		cfg.Session.Secret = env.SessionSecret
	}
	if env.RedisURL != "" {
		cfg.Redis.URL = env.RedisURL
	}
	if env.PostgresDSN != "" {
		cfg.State.PostgresDSN = env.PostgresDSN
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("session.secret is required")
	}

	return &cfg, nil
}
