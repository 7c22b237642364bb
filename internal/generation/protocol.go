// Package generation provides the client and protocol types for requesting
// podcast scripts and audio from the generation service over HTTP/JSON.
package generation

import "encoding/json"

// Wire status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Name       string `json:"name"`
	VoiceAgent string `json:"voice_agent,omitempty"`
	Language   string `json:"language"`
}

// Scripts carries the generated transcripts keyed by wire name.
type Scripts struct {
	English string `json:"eng_pod,omitempty"`
	Hindi   string `json:"hin_pod,omitempty"`
}

// Audio carries resource locators for the synthesized audio.
type Audio struct {
	English string `json:"eng_pod_audio,omitempty"`
	Hindi   string `json:"hin_pod_audio,omitempty"`
}

// GenerateResponse is returned by the service. On failure Status is
// "error" and Error holds the reason.
type GenerateResponse struct {
	Status  string  `json:"status"`
	Name    string  `json:"name,omitempty"`
	Scripts Scripts `json:"scripts"`
	Audio   Audio   `json:"audio"`
	Error   string  `json:"error,omitempty"`
}

// errorBody is the shape of non-2xx responses. Detail is a string for
// handled errors and a list of objects for request validation failures.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  string          `json:"error"`
}

func (b errorBody) message() string {
	if b.Error != "" {
		return b.Error
	}
	var detail string
	if len(b.Detail) > 0 && json.Unmarshal(b.Detail, &detail) == nil {
		return detail
	}
	return ""
}
