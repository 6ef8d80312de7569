package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvAPIKey is the environment fallback for the Gemini credential.
// It may hold several comma-separated keys.
const EnvAPIKey = "GOOGLE_API_KEY"

// secrets mirrors the layout of the secrets file.
type secrets struct {
	GoogleAPIKey  string   `yaml:"google_api_key"`
	GoogleAPIKeys []string `yaml:"google_api_keys"`
}

// Load reads the YAML config at path, applies environment overrides,
// validates it and resolves the API keys. A missing credential is not an
// error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	keys, err := ResolveAPIKeys(cfg.Paths.Secrets)
	if err != nil {
		return nil, err
	}
	cfg.APIKeys = keys

	return &cfg, nil
}

// ResolveAPIKeys returns the Gemini keys from the secrets file, falling
// back to the environment. A missing secrets file is not an error; a
// malformed one is.
func ResolveAPIKeys(secretsPath string) ([]string, error) {
	if secretsPath != "" {
		data, err := os.ReadFile(secretsPath)
		switch {
		case err == nil:
			var s secrets
			if err := yaml.Unmarshal(data, &s); err != nil {
				return nil, fmt.Errorf("parse secrets %s: %w", secretsPath, err)
			}
			keys := cleanKeys(append([]string{s.GoogleAPIKey}, s.GoogleAPIKeys...))
			if len(keys) > 0 {
				return keys, nil
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read secrets %s: %w", secretsPath, err)
		}
	}

	return cleanKeys(strings.Split(os.Getenv(EnvAPIKey), ",")), nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		cfg.Server.Port = v
	}
	if v, ok := os.LookupEnv("DB_PATH"); ok && v != "" {
		cfg.Paths.Database = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv("GEMINI_MODEL"); ok && v != "" {
		cfg.Gemini.Model = v
	}
}

func cleanKeys(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
