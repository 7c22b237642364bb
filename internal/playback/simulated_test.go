package playback

import "testing"

func TestSimulatedClockReadyImmediately(t *testing.T) {
	var e Engine
	e.Attach(SimulatedScheme+"brief", NewSimulatedClock(DefaultSimulatedDuration, DefaultSimulatedStep))

	if !e.State().Ready {
		t.Error("simulated clock should be ready on attach")
	}
	if e.Total() != "8:07" {
		t.Errorf("total = %q, want 8:07", e.Total())
	}
}

func TestSimulatedClockAdvancesPerTick(t *testing.T) {
	var e Engine
	e.Attach("sim://x", NewSimulatedClock(100, 0.01))
	e.TogglePlay()

	for i := 0; i < 10; i++ {
		e.Tick(e.Generation())
	}
	if !approx(e.ProgressPercent(), 10) {
		t.Errorf("progress = %v, want 10", e.ProgressPercent())
	}
}

func TestSimulatedClockRewindsAtEnd(t *testing.T) {
	clock := NewSimulatedClock(10, 0.5)
	clock.Play()

	clock.Advance()
	if clock.Position() != 5 {
		t.Errorf("position = %v, want 5", clock.Position())
	}
	clock.Advance()
	if clock.Position() != 0 || clock.Playing() {
		t.Errorf("end of simulated clip should rewind and stop, got pos=%v playing=%v", clock.Position(), clock.Playing())
	}
}

func TestSimulatedClockIgnoresTicksWhilePaused(t *testing.T) {
	clock := NewSimulatedClock(10, 0.5)
	clock.Advance()
	if clock.Position() != 0 {
		t.Errorf("paused clock moved to %v", clock.Position())
	}
}
