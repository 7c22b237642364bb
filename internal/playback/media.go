package playback

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Player renders audio for a MediaClock. The clock stays authoritative for
// position; the player is restarted at the clock's offset on every seek.
type Player interface {
	Start(ref string, offset float64) error
	Stop()
}

// MediaClock tracks position against wall time for a real resource.
// Duration is unknown until SetDuration is called with the probed length.
type MediaClock struct {
	ref      string
	player   Player
	now      func() time.Time
	duration float64
	base     float64
	started  time.Time
	playing  bool
}

// NewMediaClock creates a clock for ref. player may be nil for a silent
// clock; now may be nil to use time.Now.
func NewMediaClock(ref string, player Player, now func() time.Time) *MediaClock {
	if now == nil {
		now = time.Now
	}
	return &MediaClock{ref: ref, player: player, now: now}
}

// SetDuration records the probed length.
func (c *MediaClock) SetDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	c.duration = seconds
}

func (c *MediaClock) Duration() float64 { return c.duration }
func (c *MediaClock) Playing() bool     { return c.playing }

func (c *MediaClock) Position() float64 {
	if !c.playing {
		return c.base
	}
	pos := c.base + c.now().Sub(c.started).Seconds()
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}
	return pos
}

func (c *MediaClock) Play() error {
	if c.playing {
		return nil
	}
	if c.duration > 0 && c.base >= c.duration {
		c.base = 0
	}
	if c.player != nil {
		if err := c.player.Start(c.ref, c.base); err != nil {
			return fmt.Errorf("start player: %w", err)
		}
	}
	c.started = c.now()
	c.playing = true
	return nil
}

func (c *MediaClock) Pause() {
	if !c.playing {
		return
	}
	c.base = c.Position()
	c.playing = false
	if c.player != nil {
		c.player.Stop()
	}
}

func (c *MediaClock) Seek(seconds float64) error {
	if c.duration > 0 {
		seconds = clamp(seconds, 0, c.duration)
	} else if seconds < 0 {
		seconds = 0
	}
	c.base = seconds
	if !c.playing {
		return nil
	}
	c.started = c.now()
	if c.player != nil {
		c.player.Stop()
		if err := c.player.Start(c.ref, c.base); err != nil {
			c.playing = false
			return fmt.Errorf("restart player at %.1fs: %w", c.base, err)
		}
	}
	return nil
}

// Advance is a no-op; position follows wall time.
func (c *MediaClock) Advance() {}

func (c *MediaClock) Close() { c.Pause() }

// ExecPlayer plays audio through an external command such as ffplay. The
// {offset} and {ref} placeholders in Args are substituted on each start.
type ExecPlayer struct {
	Binary string
	Args   []string
	cmd    *exec.Cmd
}

// ParsePlayer splits a command line like
// "ffplay -nodisp -autoexit -ss {offset} {ref}". An empty line yields nil.
func ParsePlayer(line string) *ExecPlayer {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return &ExecPlayer{Binary: fields[0], Args: fields[1:]}
}

// Start launches the player at offset seconds into ref.
func (p *ExecPlayer) Start(ref string, offset float64) error {
	p.Stop()
	args := make([]string, 0, len(p.Args))
	for _, a := range p.Args {
		a = strings.ReplaceAll(a, "{offset}", strconv.FormatFloat(offset, 'f', 2, 64))
		a = strings.ReplaceAll(a, "{ref}", ref)
		args = append(args, a)
	}
	cmd := exec.Command(p.Binary, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	p.cmd = cmd
	go cmd.Wait()
	return nil
}

// Stop kills the running player, if any.
func (p *ExecPlayer) Stop() {
	if p.cmd == nil || p.cmd.Process == nil {
		return
	}
	p.cmd.Process.Kill()
	p.cmd = nil
}
