package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jwulff/briefcast/internal/generation"
)

func (c *Config) normalize() error {
	c.Service.BaseURL = strings.TrimRight(strings.TrimSpace(c.Service.BaseURL), "/")

	var err error
	if c.Paths.DataDir, err = ExpandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	// The pending-audio pause is UX pacing only; keep it short and non-zero.
	switch {
	case c.Workflow.AudioDelayMS < minAudioDelayMS:
		c.Workflow.AudioDelayMS = minAudioDelayMS
	case c.Workflow.AudioDelayMS > maxAudioDelayMS:
		c.Workflow.AudioDelayMS = maxAudioDelayMS
	}
	c.Workflow.DefaultVoice = strings.TrimSpace(c.Workflow.DefaultVoice)
	c.Workflow.DefaultLanguage = strings.ToLower(strings.TrimSpace(c.Workflow.DefaultLanguage))

	c.Playback.FFprobe = strings.TrimSpace(c.Playback.FFprobe)
	if c.Playback.FFprobe == "" {
		c.Playback.FFprobe = defaultFFprobe
	}
	c.Playback.Player = strings.TrimSpace(c.Playback.Player)
	if c.Playback.TickMS <= 0 {
		c.Playback.TickMS = defaultTickMS
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !c.Service.Demo {
		u, err := url.Parse(c.Service.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("service.base_url must be an http(s) URL, got %q", c.Service.BaseURL)
		}
	}
	if c.Service.TimeoutSeconds <= 0 {
		return fmt.Errorf("service.timeout_seconds must be positive, got %d", c.Service.TimeoutSeconds)
	}
	if c.Paths.DataDir == "" {
		return fmt.Errorf("paths.data_dir must be set")
	}
	if _, err := generation.ParseLanguage(c.Workflow.DefaultLanguage); err != nil {
		return fmt.Errorf("workflow.default_language: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// Language returns the configured default language.
func (c *Config) Language() generation.Language {
	lang, _ := generation.ParseLanguage(c.Workflow.DefaultLanguage)
	return lang
}
