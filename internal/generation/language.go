package generation

import (
	"fmt"
	"strings"
)

// Language is the requested podcast language.
type Language int

const (
	Hindi Language = iota
	English
	Both
)

// Languages lists the selectable languages in picker order.
var Languages = []Language{Hindi, English, Both}

// Code returns the wire code sent to the service.
func (l Language) Code() string {
	switch l {
	case Hindi:
		return "hi"
	case English:
		return "en"
	default:
		return "both"
	}
}

// String returns the display label stored on published podcasts.
func (l Language) String() string {
	switch l {
	case Hindi:
		return "Hindi"
	case English:
		return "English"
	default:
		return "Both"
	}
}

// Parts returns the single languages covered by l, english first.
func (l Language) Parts() []Language {
	switch l {
	case Hindi:
		return []Language{Hindi}
	case English:
		return []Language{English}
	default:
		return []Language{English, Hindi}
	}
}

// ParseLanguage accepts a wire code or a display label.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hi", "hindi":
		return Hindi, nil
	case "en", "english":
		return English, nil
	case "both":
		return Both, nil
	}
	return Both, fmt.Errorf("unknown language %q", s)
}
