package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tamagotchi/internal/pet"
	"tamagotchi/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VPET_DATA_DIR", dir)

	cfg, err := Load(filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageFile || cfg.HTTPTimeout != 60*time.Second || cfg.AIRate != 10 {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.LogPath() != filepath.Join(dir, "vpet.log") {
		t.Errorf("Unexpected log path %s", cfg.LogPath())
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "VPET_DATA_DIR=" + dir + "\nVPET_STORAGE=sqlite\nVPET_AI_PROVIDER=openai\nVPET_AI_KEY=sk-env\nVPET_HTTP_TIMEOUT=5s\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that are already set.
	for _, k := range []string{"VPET_DATA_DIR", "VPET_STORAGE", "VPET_AI_PROVIDER", "VPET_AI_KEY", "VPET_HTTP_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageSQLite || cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("Unexpected config %+v", cfg)
	}

	ai := cfg.ApplyAI(pet.AIConfig{Provider: pet.ProviderClaude, ClaudeAPIKey: "saved"})
	if ai.Provider != pet.ProviderOpenAI || ai.OpenAIAPIKey != "sk-env" || ai.ClaudeAPIKey != "saved" {
		t.Errorf("Unexpected AI config %+v", ai)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"Unknown storage", "VPET_STORAGE", "redis"},
		{"Unknown provider", "VPET_AI_PROVIDER", "gemini"},
		{"Bad duration", "VPET_HTTP_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VPET_DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.val)
			if _, err := Load(filepath.Join(t.TempDir(), "none.env")); err == nil {
				t.Errorf("Expected an error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestApplyAIWithoutOverride(t *testing.T) {
	saved := pet.AIConfig{Provider: pet.ProviderClaude, ClaudeAPIKey: "saved"}
	if got := (Config{}).ApplyAI(saved); got != saved {
		t.Errorf("Expected saved config to be kept, got %+v", got)
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		store, closer, err := OpenStore(Config{DataDir: t.TempDir(), Storage: StorageFile})
		if err != nil {
			t.Fatal(err)
		}
		defer closer.Close()
		if _, ok := store.(*pet.FileStore); !ok {
			t.Errorf("Expected a FileStore, got %T", store)
		}
	})
	t.Run("SQLite", func(t *testing.T) {
		store, closer, err := OpenStore(Config{DataDir: t.TempDir(), Storage: StorageSQLite})
		if err != nil {
			t.Fatal(err)
		}
		defer closer.Close()
		if _, ok := store.(*storage.SQLiteStore); !ok {
			t.Errorf("Expected a SQLiteStore, got %T", store)
		}
	})
}
