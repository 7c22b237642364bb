package app

// PlaybackTickMsg drives one reporting tick for attach generation Gen.
type PlaybackTickMsg struct {
	Gen uint64
}

// DurationProbedMsg carries the probed media length for attach
// generation Gen.
type DurationProbedMsg struct {
	Gen     uint64
	Seconds float64
	Err     error
}

// ClearStatusMsg clears the status line set by Seq if nothing newer
// replaced it.
type ClearStatusMsg struct {
	Seq int
}
