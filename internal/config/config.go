// Package config reads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"tamagotchi/internal/ai"
	"tamagotchi/internal/pet"
	"tamagotchi/internal/storage"
)

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config holds settings that are not part of the saved pet.
type Config struct {
	DataDir      string        `env:"VPET_DATA_DIR"`
	Storage      string        `env:"VPET_STORAGE" envDefault:"file"`
	AIProvider   string        `env:"VPET_AI_PROVIDER"`
	AIKey        string        `env:"VPET_AI_KEY"`
	ClaudeModel  string        `env:"VPET_CLAUDE_MODEL" envDefault:"claude-3-5-sonnet-20241022"`
	OpenAIModel  string        `env:"VPET_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	HTTPTimeout  time.Duration `env:"VPET_HTTP_TIMEOUT" envDefault:"60s"`
	AIRate       float64       `env:"VPET_AI_RATE" envDefault:"10"`
	FetchMaxSize int64         `env:"VPET_FETCH_MAX_BYTES" envDefault:"2097152"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the given .env files (or ./.env) and then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		dir, err := pet.DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	if cfg.Storage != StorageFile && cfg.Storage != StorageSQLite {
		return Config{}, fmt.Errorf("unknown storage %q: want %s or %s", cfg.Storage, StorageFile, StorageSQLite)
	}
	if _, err := pet.ParseAIProvider(cfg.AIProvider); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LogPath is where the TUI writes its log.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "vpet.log")
}

// ApplyAI overrides the saved AI settings with any set in the environment.
func (c Config) ApplyAI(saved pet.AIConfig) pet.AIConfig {
	if c.AIProvider == "" {
		return saved
	}
	p, err := pet.ParseAIProvider(c.AIProvider)
	if err != nil {
		return saved
	}
	return pet.SetAIProvider(saved, p, c.AIKey)
}

// AIOptions builds chat client options.
func (c Config) AIOptions() ai.Options {
	return ai.Options{
		Timeout:        c.HTTPTimeout,
		ClaudeModel:    c.ClaudeModel,
		OpenAIModel:    c.OpenAIModel,
		RequestsPerMin: c.AIRate,
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// OpenStore opens the configured store. The closer must be called when done.
func OpenStore(c Config) (pet.Store, io.Closer, error) {
	switch c.Storage {
	case StorageSQLite:
		s, err := storage.Open(filepath.Join(c.DataDir, pet.StorageKey+".db"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		s, err := pet.NewFileStore(c.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, closerFunc(func() error { return nil }), nil
	}
}
