package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Engine  EngineConfig  `yaml:"engine"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP transport
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadMB    int64    `yaml:"max_upload_mb"`
}

// StorageConfig holds the media and subtitle directories
type StorageConfig struct {
	UploadDir       string   `yaml:"upload_dir"`
	ProcessedDir    string   `yaml:"processed_dir"`
	MediaExtensions []string `yaml:"media_extensions"`
}

// EngineConfig describes the speech-to-text command.
// Args may use {input}, {output}, {output_dir} and {base}.
type EngineConfig struct {
	Command     string   `yaml:"command"`
	Args        []string `yaml:"args"`
	Timeout     string   `yaml:"timeout"`
	StderrLimit int      `yaml:"stderr_limit"`
}

// JobsConfig bounds the job runner
type JobsConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	EventHistory  int `yaml:"event_history"`
	JobHistory    int `yaml:"job_history"`
}

// CacheConfig sizes the parsed transcript cache
type CacheConfig struct {
	Transcripts int `yaml:"transcripts"`
}

// LogConfig selects log verbosity and encoding
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // auto, text, json
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":5000",
			AllowedOrigins: []string{"*"},
			MaxUploadMB:    2048,
		},
		Storage: StorageConfig{
			UploadDir:       UploadDir(),
			ProcessedDir:    ProcessedDir(),
			MediaExtensions: []string{".mp4"},
		},
		Engine: EngineConfig{
			Command:     "stable-ts",
			Args:        []string{"{input}", "-o", "{output}"},
			Timeout:     "30m",
			StderrLimit: 2048,
		},
		Jobs: JobsConfig{
			MaxConcurrent: 2,
			EventHistory:  500,
			JobHistory:    200,
		},
		Cache: CacheConfig{
			Transcripts: 64,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// AppDir returns the application directory (~/.video-transcribe)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".video-transcribe"
	}
	return filepath.Join(home, ".video-transcribe")
}

// UploadDir returns the default directory for uploaded media
func UploadDir() string {
	return filepath.Join(AppDir(), "uploads")
}

// ProcessedDir returns the default directory for subtitle artifacts
func ProcessedDir() string {
	return filepath.Join(AppDir(), "processed")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// Bootstrap creates the directories the configuration points at.
// It runs once at startup, before any upload is accepted.
func Bootstrap(cfg *Config) error {
	dirs := []string{cfg.Storage.UploadDir, cfg.Storage.ProcessedDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Storage.UploadDir = expandHome(cfg.Storage.UploadDir)
	cfg.Storage.ProcessedDir = expandHome(cfg.Storage.ProcessedDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs []error
	if c.Storage.UploadDir == "" {
		errs = append(errs, errors.New("storage.upload_dir is required"))
	}
	if c.Storage.ProcessedDir == "" {
		errs = append(errs, errors.New("storage.processed_dir is required"))
	}
	for _, ext := range c.Storage.MediaExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("storage.media_extensions: %q must start with a dot", ext))
		}
	}
	if strings.TrimSpace(c.Engine.Command) == "" {
		errs = append(errs, errors.New("engine.command is required"))
	}
	if _, err := ParseDuration(c.Engine.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("engine.timeout: %w", err))
	}
	if c.Jobs.MaxConcurrent < 1 {
		errs = append(errs, errors.New("jobs.max_concurrent must be at least 1"))
	}
	switch c.Log.Format {
	case "", "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// GetEngineTimeout returns the per-job engine timeout as a duration
func (c *Config) GetEngineTimeout() (time.Duration, error) {
	return ParseDuration(c.Engine.Timeout)
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

var durationPattern = regexp.MustCompile(`^(\d+)(s|m|h|d)$`)

// ParseDuration parses duration strings like "90s", "30m", "24h", "7d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 30m, 2h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "s":
		return time.Duration(value) * time.Second, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
