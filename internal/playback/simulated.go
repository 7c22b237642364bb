package playback

// DefaultSimulatedDuration is the length of a simulated brief (8:07).
const DefaultSimulatedDuration = 487

// DefaultSimulatedStep advances 0.4% of the duration per tick.
const DefaultSimulatedStep = 0.004

// SimulatedClock is a media-free clock advanced by a fixed step on each
// reporting tick. Its duration is known immediately.
type SimulatedClock struct {
	duration float64
	step     float64
	position float64
	playing  bool
}

// NewSimulatedClock creates a clock of the given length that advances
// step×duration seconds per tick.
func NewSimulatedClock(duration, step float64) *SimulatedClock {
	if duration < 0 {
		duration = 0
	}
	if step <= 0 {
		step = DefaultSimulatedStep
	}
	return &SimulatedClock{duration: duration, step: step}
}

func (c *SimulatedClock) Duration() float64 { return c.duration }
func (c *SimulatedClock) Position() float64 { return c.position }
func (c *SimulatedClock) Playing() bool     { return c.playing }

func (c *SimulatedClock) Play() error {
	c.playing = true
	return nil
}

func (c *SimulatedClock) Pause() { c.playing = false }

func (c *SimulatedClock) Seek(seconds float64) error {
	c.position = clamp(seconds, 0, c.duration)
	return nil
}

// Advance moves the position forward while playing. Reaching the end stops
// playback and rewinds to the start.
func (c *SimulatedClock) Advance() {
	if !c.playing {
		return
	}
	c.position += c.step * c.duration
	if c.position >= c.duration {
		c.position = 0
		c.playing = false
	}
}

func (c *SimulatedClock) Close() { c.playing = false }
