// Package podcast defines the published podcast record and the search
// predicate applied to the published list.
package podcast

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// DateLayout is the display format captured when a podcast is published.
const DateLayout = "Jan 2, 2006"

// ExcerptRunes is the transcript prefix length kept as the description.
const ExcerptRunes = 100

// Podcast is a published episode. Records are never edited after creation.
type Podcast struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Language    string `json:"lang"`
	AudioRef    string `json:"audioUrl,omitempty"`
}

// New builds a record captured at the given instant.
func New(name, transcript, language, audioRef string, at time.Time) Podcast {
	return Podcast{
		ID:          at.UnixMilli(),
		Name:        name,
		Description: Excerpt(transcript),
		Date:        at.Format(DateLayout),
		Language:    language,
		AudioRef:    audioRef,
	}
}

// Excerpt returns the leading ExcerptRunes runes of text followed by "...".
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > ExcerptRunes {
		runes = runes[:ExcerptRunes]
	}
	return string(runes) + "..."
}

// HasAudio reports whether the record can be replayed.
func (p Podcast) HasAudio() bool {
	return strings.TrimSpace(p.AudioRef) != ""
}

var folder = cases.Fold()

// Matches reports whether query occurs in the name or description,
// ignoring case. An empty query matches everything.
func Matches(p Podcast, query string) bool {
	q := folder.String(query)
	return strings.Contains(folder.String(p.Name), q) ||
		strings.Contains(folder.String(p.Description), q)
}

// Filter returns the podcasts matching query, preserving order. The
// result never aliases list.
func Filter(list []Podcast, query string) []Podcast {
	if query == "" {
		return slices.Clone(list)
	}
	var out []Podcast
	for _, p := range list {
		if Matches(p, query) {
			out = append(out, p)
		}
	}
	return out
}
