package config

import (
	"fmt"
	"time"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Polling     PollingConfig     `yaml:"polling"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Report      ReportConfig      `yaml:"report"`
	Media       MediaConfig       `yaml:"media"`
	Watcher     WatcherConfig     `yaml:"watcher"`
	Storage     StorageConfig     `yaml:"storage"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type PathsConfig struct {
	Input   string `yaml:"input"`
	Reports string `yaml:"reports"`
	Temp    string `yaml:"temp"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type PollingConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Interval    time.Duration `yaml:"interval"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type ReportConfig struct {
	URLPrefix     string `yaml:"url_prefix"`
	BreakInterval int    `yaml:"break_interval"`
}

type MediaConfig struct {
	FFmpegPath   string `yaml:"ffmpeg_path"`
	ExtractAudio bool   `yaml:"extract_audio"`
}

type WatcherConfig struct {
	Enabled       bool     `yaml:"enabled"`
	OutputOptions []string `yaml:"output_options"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

// S3Config mirrors rendered reports into a bucket. Empty endpoint disables it.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"`
}

type MetricsConfig struct {
	Address string `yaml:"address"`
}

func (c *Config) Validate() error {
	if c.Paths.Reports == "" {
		return fmt.Errorf("paths.reports is required")
	}
	if c.Watcher.Enabled && c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required when watcher is enabled")
	}
	if c.Storage.S3.Endpoint != "" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("storage.s3.bucket is required when storage.s3.endpoint is set")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/jobs.db"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Polling.MaxAttempts <= 0 {
		c.Polling.MaxAttempts = 15
	}
	if c.Polling.Interval <= 0 {
		c.Polling.Interval = 2 * time.Second
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Report.URLPrefix == "" {
		c.Report.URLPrefix = "/generated_reports"
	}
	if c.Report.BreakInterval <= 0 {
		c.Report.BreakInterval = 5
	}
	if c.Media.FFmpegPath == "" {
		c.Media.FFmpegPath = "ffmpeg"
	}
	if len(c.Watcher.OutputOptions) == 0 {
		c.Watcher.OutputOptions = []string{"summary_transcript", "md"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
