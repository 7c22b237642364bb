package generation

import (
	"errors"
	"strings"
)

// DefaultErrorMessage is shown when the service gives no usable reason.
const DefaultErrorMessage = "Failed to generate podcast. Please try again."

// TranscriptSeparator joins english and hindi transcripts for review.
const TranscriptSeparator = "\n\n"

// Request is one generation attempt. It is not modified once sent.
type Request struct {
	Name     string
	VoiceID  string
	Language Language
}

// NewRequest trims the name and reduces a picker label such as
// "sachit (Male/En)" to its voice code.
func NewRequest(name, voice string, lang Language) Request {
	var voiceID string
	if fields := strings.Fields(voice); len(fields) > 0 {
		voiceID = fields[0]
	}
	return Request{
		Name:     strings.TrimSpace(name),
		VoiceID:  voiceID,
		Language: lang,
	}
}

// Payload converts r to its wire form.
func (r Request) Payload() GenerateRequest {
	return GenerateRequest{
		Name:       r.Name,
		VoiceAgent: r.VoiceID,
		Language:   r.Language.Code(),
	}
}

// Result is a settled successful generation for a requested language.
// Only keys for the requested languages are populated.
type Result struct {
	Language    Language
	Name        string
	Transcripts map[Language]string
	AudioRefs   map[Language]string
}

// NewResult keeps only the parts of resp that lang asked for.
func NewResult(lang Language, resp GenerateResponse) Result {
	res := Result{
		Language:    lang,
		Name:        resp.Name,
		Transcripts: make(map[Language]string),
		AudioRefs:   make(map[Language]string),
	}
	for _, part := range lang.Parts() {
		var script, audio string
		switch part {
		case English:
			script, audio = resp.Scripts.English, resp.Audio.English
		case Hindi:
			script, audio = resp.Scripts.Hindi, resp.Audio.Hindi
		}
		if script = strings.TrimSpace(script); script != "" {
			res.Transcripts[part] = script
		}
		if audio = strings.TrimSpace(audio); audio != "" {
			res.AudioRefs[part] = audio
		}
	}
	return res
}

// Transcript returns the review text. For Both it is the english text,
// the separator, then the hindi text.
func (r Result) Transcript() string {
	switch r.Language {
	case Hindi:
		return r.Transcripts[Hindi]
	case English:
		return r.Transcripts[English]
	default:
		en, hi := r.Transcripts[English], r.Transcripts[Hindi]
		switch {
		case en == "":
			return hi
		case hi == "":
			return en
		}
		return en + TranscriptSeparator + hi
	}
}

// AudioRef returns the first available locator, english first.
func (r Result) AudioRef() (Language, string, bool) {
	for _, part := range []Language{English, Hindi} {
		if ref, ok := r.AudioRefs[part]; ok {
			return part, ref, true
		}
	}
	return r.Language, "", false
}

// MissingAudio returns the requested languages that came back without audio.
func (r Result) MissingAudio() []Language {
	var missing []Language
	for _, part := range r.Language.Parts() {
		if _, ok := r.AudioRefs[part]; !ok {
			missing = append(missing, part)
		}
	}
	return missing
}

// Error is a normalized generation failure. Message is safe to show to the
// user verbatim; Err keeps the transport cause when there is one.
type Error struct {
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message extracts the user-facing text from any generation error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var genErr *Error
	if errors.As(err, &genErr) {
		if genErr.Message != "" {
			return genErr.Message
		}
		return DefaultErrorMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}
