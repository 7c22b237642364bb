// Package playback derives a play/seek/progress view from a media clock.
//
// The Engine never reads a concrete media API. It drives a Clock, which is
// either backed by a real resource (MediaClock) or advanced by a fixed tick
// (SimulatedClock) when no media exists yet.
package playback

import (
	"net/url"
	"strings"
)

// SimulatedScheme marks locators that have no media behind them.
const SimulatedScheme = "sim://"

// Clock is the capability the Engine needs from a media resource. All
// values are in seconds. Duration is 0 until the resource reports it.
type Clock interface {
	Duration() float64
	Position() float64
	Playing() bool
	Play() error
	Pause()
	// Seek moves to seconds. A playing clock that cannot resume returns
	// the error and is left paused.
	Seek(seconds float64) error
	// Advance is called once per reporting tick; real clocks may ignore it.
	Advance()
	Close()
}

// ResolveRef makes a locator playable. Absolute URLs and simulated refs
// pass through; relative paths are joined to the service host, with an
// /api/v1 suffix on base removed.
func ResolveRef(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, SimulatedScheme) {
		return ref
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	root := strings.TrimRight(base, "/")
	root = strings.TrimSuffix(root, "/api/v1")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return root + ref
}

// IsSimulated reports whether ref should be driven by a SimulatedClock.
func IsSimulated(ref string) bool {
	return strings.HasPrefix(ref, SimulatedScheme)
}
