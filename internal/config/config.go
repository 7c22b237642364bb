// Package config loads briefcast settings from TOML.
//
// Load resolves the file (explicit path, ~/.config/briefcast/config.toml,
// then ./briefcast.toml), decodes it over Default(), normalizes paths and
// validates the result.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Service configures the generation service connection.
type Service struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// Demo answers locally with a canned script instead of calling BaseURL.
	Demo bool `toml:"demo"`
}

// Paths contains data and log directories.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Workflow configures the generation workflow.
type Workflow struct {
	AudioDelayMS    int    `toml:"audio_delay_ms"`
	DefaultVoice    string `toml:"default_voice"`
	DefaultLanguage string `toml:"default_language"`
}

// Playback configures the audio engine.
type Playback struct {
	FFprobe string `toml:"ffprobe"`
	Player  string `toml:"player"`
	TickMS  int    `toml:"tick_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for briefcast.
type Config struct {
	Service  Service  `toml:"service"`
	Paths    Paths    `toml:"paths"`
	Workflow Workflow `toml:"workflow"`
	Playback Playback `toml:"playback"`
	Logging  Logging  `toml:"logging"`
}

// Load locates, parses, and validates a configuration file. It returns the
// resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// DefaultConfigPath returns the absolute default configuration location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := ExpandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("briefcast.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// AudioDelay returns the minimum time the audio-pending stage is shown.
func (c *Config) AudioDelay() time.Duration {
	return time.Duration(c.Workflow.AudioDelayMS) * time.Millisecond
}

// Timeout returns the generation request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}

// TickInterval returns the playback reporting interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Playback.TickMS) * time.Millisecond
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes a sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
