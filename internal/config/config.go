package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Limits      LimitsConfig      `yaml:"limits"`
	Watch       WatchConfig       `yaml:"watch"`
	Export      ExportConfig      `yaml:"export"`

	// APIKeys is resolved from the secrets file or the environment,
	// never from config.yaml.
	APIKeys []string `yaml:"-"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	AllowOrigins []string      `yaml:"allow_origins"`
}

type GeminiConfig struct {
	Model          string        `yaml:"model"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	PollTimeout    time.Duration `yaml:"poll_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type FFmpegConfig struct {
	// BinaryPath enables transcoding of browser audio to WAV when set.
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type PathsConfig struct {
	Database string `yaml:"database"`
	Temp     string `yaml:"temp"`
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
	Secrets  string `yaml:"secrets"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	LeaseTTL      time.Duration `yaml:"lease_ttl"`
}

type LimitsConfig struct {
	MaxUploadMB    int64 `yaml:"max_upload_mb"`
	MaterialsChars int   `yaml:"materials_chars"`
}

type WatchConfig struct {
	RetryInterval time.Duration `yaml:"retry_interval"`
	RetryTimeout  time.Duration `yaml:"retry_timeout"`
}

type ExportConfig struct {
	Markdown bool `yaml:"markdown"`
}

func (c *Config) Validate() error {
	if c.Paths.Database == "" {
		return fmt.Errorf("paths.database is required")
	}
	if c.Paths.Temp == "" {
		return fmt.Errorf("paths.temp is required")
	}
	if c.Gemini.PollInterval < 0 || c.Gemini.PollTimeout < 0 {
		return fmt.Errorf("gemini poll durations must not be negative")
	}
	if c.Performance.LeaseTTL < 0 {
		return fmt.Errorf("performance.lease_ttl must not be negative")
	}
	if c.Limits.MaxUploadMB < 0 {
		return fmt.Errorf("limits.max_upload_mb must not be negative")
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"*"}
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.PollInterval == 0 {
		c.Gemini.PollInterval = time.Second
	}
	if c.Gemini.PollTimeout == 0 {
		c.Gemini.PollTimeout = 2 * time.Minute
	}
	if c.Gemini.RequestTimeout == 0 {
		c.Gemini.RequestTimeout = 5 * time.Minute
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Secrets == "" {
		c.Paths.Secrets = ".secrets.yaml"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.LeaseTTL == 0 {
		c.Performance.LeaseTTL = time.Minute
	}
	if c.Limits.MaxUploadMB == 0 {
		c.Limits.MaxUploadMB = 50
	}
	if c.Limits.MaterialsChars == 0 {
		c.Limits.MaterialsChars = 30000
	}
	if c.Watch.RetryInterval == 0 {
		c.Watch.RetryInterval = 2 * time.Second
	}
	if c.Watch.RetryTimeout == 0 {
		c.Watch.RetryTimeout = 10 * time.Minute
	}

	return nil
}

// HasAPIKey reports whether any Gemini credential was resolved.
func (c *Config) HasAPIKey() bool {
	return len(c.APIKeys) > 0
}
