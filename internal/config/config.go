package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledger.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Schemas SchemasConfig `yaml:"schemas"`
	Events  EventsConfig  `yaml:"events,omitempty"`
	Git     GitConfig     `yaml:"git"`
}

// StorageConfig selects the ledger store backend.
type StorageConfig struct {
	// Backend is one of "csv", "memory", "postgres".
	Backend string `yaml:"backend"`
	// DSNEnv names the environment variable holding the Postgres DSN.
	DSNEnv string `yaml:"dsn_env,omitempty"`
}

// SchemasConfig controls schema registration behavior.
type SchemasConfig struct {
	// Redefine is one of "error", "ignore", "overwrite".
	Redefine string `yaml:"redefine"`
}

// EventsConfig configures the optional posting event publisher.
type EventsConfig struct {
	Brokers []string `yaml:"brokers,omitempty"`
	Topic   string   `yaml:"topic,omitempty"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a ledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "csv",
			DSNEnv:  "SCHEMALEDGER_POSTGRES_DSN",
		},
		Schemas: SchemasConfig{
			Redefine: "error",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Schemaledger",
			AuthorEmail: "ledger@localhost",
		},
	}
}

// PostgresDSN resolves the Postgres DSN from the environment, loading a
// .env file first if one exists.
func (c *Config) PostgresDSN() (string, error) {
	_ = godotenv.Load()

	env := c.Storage.DSNEnv
	if env == "" {
		env = "SCHEMALEDGER_POSTGRES_DSN"
	}
	dsn := os.Getenv(env)
	if dsn == "" {
		return "", fmt.Errorf("environment variable %s is not set", env)
	}
	return dsn, nil
}
