// Package workflow owns the lifecycle of one podcast generation session:
// submit, transcript review, audio wait, then publish or discard.
//
// The controller is driven from a single event loop. Every asynchronous
// completion carries the token of the session that started it and is
// dropped unless that session is still the active one.
package workflow

import (
	"errors"
	"fmt"
)

// Stage is a phase of the session state machine.
type Stage int

const (
	StageIdle Stage = iota
	StageTranscriptPending
	StageTranscriptReady
	StageAudioPending
	StageAudioReady
	StagePublished
	StageDiscarded
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageTranscriptPending:
		return "transcript_pending"
	case StageTranscriptReady:
		return "transcript_ready"
	case StageAudioPending:
		return "audio_pending"
	case StageAudioReady:
		return "audio_ready"
	case StagePublished:
		return "published"
	case StageDiscarded:
		return "discarded"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Terminal reports whether the stage ends its session.
func (s Stage) Terminal() bool {
	return s == StagePublished || s == StageDiscarded
}

var (
	// ErrEmptyName is returned by Submit when the trimmed name is empty.
	ErrEmptyName = errors.New("podcast name is required")
	// ErrInvalidStage is returned when an operation is not allowed in the
	// current stage.
	ErrInvalidStage = errors.New("invalid stage")
	// ErrNoSession is returned when an operation needs an active session.
	ErrNoSession = errors.New("no active session")
	// ErrAlreadyPublished is returned when publishing a replayed podcast.
	ErrAlreadyPublished = errors.New("podcast already published")
)

// isValidTransition enforces the allowed session state machine edges.
// TranscriptPending to itself records a generation error.
func isValidTransition(from, to Stage) bool {
	switch from {
	case StageIdle:
		return to == StageTranscriptPending || to == StageAudioReady
	case StageTranscriptPending:
		return to == StageTranscriptReady || to == StageTranscriptPending || to == StageDiscarded
	case StageTranscriptReady:
		return to == StageAudioPending || to == StageDiscarded
	case StageAudioPending:
		return to == StageAudioReady || to == StageDiscarded
	case StageAudioReady:
		return to == StagePublished || to == StageDiscarded
	default:
		return false
	}
}

func stageError(op string, from Stage) error {
	return fmt.Errorf("%s in %s: %w", op, from, ErrInvalidStage)
}
