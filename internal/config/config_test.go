package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Database: "data/legalos.db",
					Temp:     "data/temp",
				},
			},
			wantErr: false,
		},
		{
			name: "missing database",
			config: Config{
				Paths: PathsConfig{Temp: "data/temp"},
			},
			wantErr: true,
		},
		{
			name: "missing temp",
			config: Config{
				Paths: PathsConfig{Database: "data/legalos.db"},
			},
			wantErr: true,
		},
		{
			name: "negative poll timeout",
			config: Config{
				Paths:  PathsConfig{Database: "db", Temp: "tmp"},
				Gemini: GeminiConfig{PollTimeout: -time.Second},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Database: "db", Temp: "tmp"}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %v", cfg.Gemini.Model)
	}
	if cfg.Gemini.PollTimeout != 2*time.Minute {
		t.Errorf("PollTimeout = %v", cfg.Gemini.PollTimeout)
	}
	if cfg.Limits.MaterialsChars != 30000 {
		t.Errorf("MaterialsChars = %v", cfg.Limits.MaterialsChars)
	}
	if cfg.Performance.MaxConcurrent != 2 || cfg.Performance.LeaseTTL != time.Minute {
		t.Errorf("performance = %+v", cfg.Performance)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvAPIKey, "")
	t.Setenv("PORT", "")

	cfgPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
gemini:
  model: "gemini-2.5-flash"
  poll_interval: 500ms
  poll_timeout: 30s
paths:
  database: "data/test.db"
  temp: "data/temp"
  secrets: "` + filepath.Join(dir, "secrets.yaml") + `"
logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %v, want 9090", cfg.Server.Port)
	}
	if cfg.Gemini.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.Gemini.PollInterval)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %v", cfg.Logging.Format)
	}
	if cfg.HasAPIKey() {
		t.Errorf("APIKeys = %v, want none", cfg.APIKeys)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestResolveAPIKeys(t *testing.T) {
	dir := t.TempDir()

	t.Run("secrets file wins", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		path := filepath.Join(dir, "secrets.yaml")
		content := "google_api_key: a\ngoogle_api_keys: [b, a, \" c \"]\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		keys, err := ResolveAPIKeys(path)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"a", "b", "c"}, keys); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "k1, k2,,")
		keys, err := ResolveAPIKeys(filepath.Join(dir, "missing.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"k1", "k2"}, keys); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("absent is not an error", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		keys, err := ResolveAPIKeys("")
		if err != nil {
			t.Fatal(err)
		}
		if len(keys) != 0 {
			t.Errorf("keys = %v", keys)
		}
	})

	t.Run("malformed secrets", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("google_api_keys: {"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := ResolveAPIKeys(path); err == nil {
			t.Error("expected error for malformed secrets")
		}
	})
}
