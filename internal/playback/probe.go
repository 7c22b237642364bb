package playback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prober reports the length of a media resource in seconds.
type Prober interface {
	Duration(ctx context.Context, ref string) (float64, error)
}

// FFprobe probes resources with the ffprobe binary.
type FFprobe struct {
	Binary string
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration runs ffprobe against ref and returns the container duration.
func (p FFprobe) Duration(ctx context.Context, ref string) (float64, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, errors.New("ffprobe: empty ref")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", ref)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbe(output)
}

func parseProbe(output []byte) (float64, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration %q: %w", out.Format.Duration, err)
	}
	return seconds, nil
}
