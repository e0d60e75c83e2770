// Package config loads deployment configuration from the environment.
// Storage strategy selection is a deployment-time decision; nothing in the
// core switches strategies after startup.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageBadger = "badger"
)

type Config struct {
	// Storage selects the backend strategy for the whole process.
	Storage string `validate:"required,oneof=memory file badger"`
	// DataDir is the root directory for the file and badger strategies.
	DataDir string `validate:"required_unless=Storage memory"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `validate:"required,oneof=debug info warn error"`
}

var validate = validator.New()

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Storage:  envOr("PARLEY_STORAGE", StorageMemory),
		DataDir:  envOr("PARLEY_DATA_DIR", "data"),
		LogLevel: envOr("PARLEY_LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
