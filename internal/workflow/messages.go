package workflow

import "github.com/jwulff/briefcast/internal/generation"

// GenerationSettledMsg carries the outcome of the generation call issued
// for session Token.
type GenerationSettledMsg struct {
	Token  uint64
	Result generation.Result
	Err    error
}

// AudioDelayElapsedMsg fires when the audio-pending pause for session
// Token has run out.
type AudioDelayElapsedMsg struct {
	Token uint64
}
