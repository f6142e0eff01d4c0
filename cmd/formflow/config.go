package main

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the serve command's YAML configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	Store StoreConfig `yaml:"store"`

	// Encryption enables AES-256-GCM envelopes for artifacts at rest.
	Encryption EncryptionConfig `yaml:"encryption"`

	// MaskFields are regular expressions; answers whose field name matches
	// are masked before persistence.
	MaskFields []string `yaml:"maskFields"`
}

// StoreConfig selects and configures the artifact store backend.
type StoreConfig struct {
	// Kind is "memory" or "redis".
	Kind string `yaml:"kind"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`

	// DistributedLocks serializes updates across replicas.
	DistributedLocks bool     `yaml:"distributedLocks"`
	LockTTL          Duration `yaml:"lockTTL"`
}

// Duration parses Go duration strings ("30s", "24h") from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// EncryptionConfig carries base64-encoded 32-byte AES keys.
type EncryptionConfig struct {
	Key          string   `yaml:"key"`
	FallbackKeys []string `yaml:"fallbackKeys"`
}

func defaultConfig() *Config {
	return &Config{
		Addr:     ":8080",
		LogLevel: "info",
		Store:    StoreConfig{Kind: "memory"},
	}
}

// loadConfig reads the YAML file at path, or returns defaults when path is
// empty.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Store.Kind {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
	return cfg, nil
}

func (c *Config) slogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

// decodeKey decodes a base64 AES key and checks its length.
func decodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
