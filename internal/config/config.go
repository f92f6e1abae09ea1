// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	RepositorySQLite   = "sqlite"
	RepositoryPostgres = "postgres"
	RepositoryInMemory = "inmemory"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Validation ValidationConfig `mapstructure:"validation"`
	HTTP       HTTPConfig       `mapstructure:"http"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path           string        `mapstructure:"path"` // файл sqlite, относительно рабочей директории
	URL            string        `mapstructure:"url"`  // строка подключения postgres
	MaxConnections int           `mapstructure:"max_connections"`
	MinConnections int           `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

type RepositoryConfig struct {
	Type string `mapstructure:"type"` // "sqlite", "postgres" или "inmemory"
}

type ValidationConfig struct {
	Strict bool `mapstructure:"strict"`
}

type HTTPConfig struct {
	RateLimit          int      `mapstructure:"rate_limit"` // запросов в минуту с одного IP, 0 отключает
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	Tracing            bool     `mapstructure:"tracing"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.path", "todoApplication.db")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)

	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "info")

	v.SetDefault("repository.type", RepositorySQLite)
	v.SetDefault("validation.strict", true)

	v.SetDefault("http.rate_limit", 100)
	v.SetDefault("http.cors_allowed_origins", []string{"*"})
	v.SetDefault("http.tracing", false)
}

// Load reads .env (if any), then config.yml from the working directory or the
// file named by TODO_CONFIG, then TODO_* environment overrides.
// A missing config file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("TODO_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения конфига: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфига: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Repository.Type {
	case RepositorySQLite:
		if c.Database.Path == "" {
			return errors.New("database.path обязателен для sqlite")
		}
	case RepositoryPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url обязателен для postgres")
		}
	case RepositoryInMemory:
	default:
		return fmt.Errorf("неизвестный тип репозитория %q", c.Repository.Type)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
