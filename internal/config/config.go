package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingSecret is returned when no token signing secret is configured.
var ErrMissingSecret = errors.New("auth.jwt_secret (or JWT_SECRET) must be set")

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr is the listen address for Port.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MigrationsPath  string        `yaml:"migrations_path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	BcryptCost      int    `yaml:"bcrypt_cost"`
	HashConcurrency int    `yaml:"hash_concurrency"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MigrationsPath: "file://migrations",
			MaxOpenConns:   5,
			MaxIdleConns:   5,
		},
		Auth: AuthConfig{
			BcryptCost: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the specified YAML file, then applies
// the DATABASE_URL, JWT_SECRET and PORT environment overrides. The file may
// be absent when the environment supplies everything required.
func LoadConfig(configPath string) (*Config, error) {
	config := defaults()

	file, err := os.Open(configPath)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// environment only
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(config *Config) {
	if v, ok := os.LookupEnv("DATABASE_URL"); ok && v != "" {
		config.Database.URL = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		config.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.Server.Port = v
	}
}

// Validate reports the first setting that would prevent startup.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.Database.URL == "" {
		return errors.New("database.url (or DATABASE_URL) must be set")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", c.Server.Port)
	}
	return nil
}
