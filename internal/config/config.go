// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service settings.
type Config struct {
	AppPort      string        `mapstructure:"APP_PORT" validate:"required"`
	DBDriver     string        `mapstructure:"DB_DRIVER" validate:"oneof=sqlite postgres memory"`
	DatabaseDSN  string        `mapstructure:"DATABASE_DSN" validate:"required_unless=DBDriver memory"`
	RabbitMQURL  string        `mapstructure:"RABBITMQ_URL" validate:"omitempty,url"`
	LogMode      string        `mapstructure:"LOG_MODE" validate:"oneof=development production"`
	LogFile      string        `mapstructure:"LOG_FILE"`
	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT" validate:"gte=0"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT" validate:"gte=0"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "inventory.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("READ_TIMEOUT", "10s")
	v.SetDefault("WRITE_TIMEOUT", "10s")
}

// Load reads .env (when present) and the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
