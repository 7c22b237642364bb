package playback

import (
	"errors"
	"fmt"
	"math"
)

var errNoDuration = errors.New("resource reported no duration")

// State is the engine's derived view. It is never persisted.
type State struct {
	PositionSeconds float64
	DurationSeconds float64
	IsPlaying       bool
	// Ready is false until a resource is attached and reports a duration.
	Ready bool
	// Unavailable is set when the resource failed to load.
	Unavailable bool
}

// Engine exposes normalized progress, labels and seek over whatever Clock
// is attached. The zero value is detached.
type Engine struct {
	clock       Clock
	ref         string
	gen         uint64
	ready       bool
	unavailable bool
	failure     string
}

// Attach binds clock for ref and returns the attach generation. Messages
// for older generations must be dropped by passing their generation to
// DurationKnown, Fail and Tick.
func (e *Engine) Attach(ref string, clock Clock) uint64 {
	if e.clock != nil {
		e.clock.Close()
	}
	e.gen++
	e.clock = clock
	e.ref = ref
	e.ready = false
	e.unavailable = false
	e.failure = ""
	if clock != nil {
		_ = clock.Seek(0)
		if clock.Duration() > 0 {
			e.ready = true
		}
	}
	return e.gen
}

// Detach releases the current clock. Pending messages become stale.
func (e *Engine) Detach() {
	if e.clock != nil {
		e.clock.Close()
	}
	e.gen++
	e.clock = nil
	e.ref = ""
	e.ready = false
	e.unavailable = false
	e.failure = ""
}

// Generation returns the current attach generation.
func (e *Engine) Generation() uint64 { return e.gen }

// Ref returns the attached locator.
func (e *Engine) Ref() string { return e.ref }

// Attached reports whether a clock is bound.
func (e *Engine) Attached() bool { return e.clock != nil }

// Failure returns the load failure reason, if any.
func (e *Engine) Failure() string { return e.failure }

// DurationKnown records the length reported by the resource for gen. A
// non-positive length marks the resource unavailable.
func (e *Engine) DurationKnown(gen uint64, seconds float64) bool {
	if gen != e.gen || e.clock == nil || e.unavailable {
		return false
	}
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		e.Fail(gen, errNoDuration)
		return false
	}
	if setter, ok := e.clock.(interface{ SetDuration(float64) }); ok {
		setter.SetDuration(seconds)
	}
	e.ready = e.clock.Duration() > 0
	return e.ready
}

// Fail marks the resource unavailable. Playback stops; nothing escalates.
func (e *Engine) Fail(gen uint64, err error) bool {
	if gen != e.gen || e.clock == nil {
		return false
	}
	e.clock.Pause()
	e.ready = false
	e.unavailable = true
	if err != nil {
		e.failure = err.Error()
	}
	return true
}

// TogglePlay flips play/pause. It does nothing until the resource is ready.
func (e *Engine) TogglePlay() {
	if e.clock == nil || !e.ready || e.unavailable {
		return
	}
	if e.clock.Playing() {
		e.clock.Pause()
		return
	}
	if err := e.clock.Play(); err != nil {
		e.Fail(e.gen, err)
	}
}

// Seek moves to fraction of the duration. fraction is clamped to [0,1].
func (e *Engine) Seek(fraction float64) {
	if e.clock == nil || !e.ready {
		return
	}
	if math.IsNaN(fraction) {
		fraction = 0
	}
	fraction = clamp(fraction, 0, 1)
	dur := e.clock.Duration()
	e.seek(clamp(fraction*dur, 0, dur))
}

// SeekBy moves the position by delta seconds.
func (e *Engine) SeekBy(delta float64) {
	if e.clock == nil || !e.ready {
		return
	}
	dur := e.clock.Duration()
	e.seek(clamp(e.clock.Position()+delta, 0, dur))
}

// seek forwards to the clock; a clock that cannot resume is unavailable.
func (e *Engine) seek(seconds float64) {
	if err := e.clock.Seek(seconds); err != nil {
		e.Fail(e.gen, err)
	}
}

// Tick runs one reporting tick for gen. It reports whether the caller
// should keep ticking.
func (e *Engine) Tick(gen uint64) bool {
	if gen != e.gen || e.clock == nil || e.unavailable {
		return false
	}
	e.clock.Advance()
	if dur := e.clock.Duration(); dur > 0 && e.clock.Playing() && e.clock.Position() >= dur {
		e.clock.Pause()
		_ = e.clock.Seek(dur)
	}
	return true
}

// State returns the current snapshot. Without a clock it is the
// placeholder: stopped at zero and not ready.
func (e *Engine) State() State {
	if e.clock == nil {
		return State{}
	}
	dur := e.clock.Duration()
	if !e.ready {
		dur = 0
	}
	return State{
		PositionSeconds: clamp(e.clock.Position(), 0, math.Max(dur, 0)),
		DurationSeconds: dur,
		IsPlaying:       e.clock.Playing() && !e.unavailable,
		Ready:           e.ready,
		Unavailable:     e.unavailable,
	}
}

// ProgressPercent returns position/duration×100 in [0,100], or 0 when the
// duration is unknown.
func (e *Engine) ProgressPercent() float64 {
	s := e.State()
	return Progress(s.PositionSeconds, s.DurationSeconds)
}

// Elapsed formats the position as m:ss.
func (e *Engine) Elapsed() string { return FormatTime(e.State().PositionSeconds) }

// Total formats the duration as m:ss.
func (e *Engine) Total() string { return FormatTime(e.State().DurationSeconds) }

// Progress is the guarded percentage used by the engine.
func Progress(position, duration float64) float64 {
	if duration <= 0 || math.IsNaN(duration) || math.IsNaN(position) || math.IsInf(duration, 0) {
		return 0
	}
	return clamp(position/duration*100, 0, 100)
}

// FormatTime renders seconds as m:ss. NaN and negative values render 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
