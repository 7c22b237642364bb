package generation

import (
	"encoding/json"
	"testing"
)

func TestRequestPayloadOmitsEmptyVoice(t *testing.T) {
	req := NewRequest("  Test  ", "", English)

	data, err := json.Marshal(req.Payload())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}

	if raw["name"] != "Test" {
		t.Errorf("name = %v, want %q", raw["name"], "Test")
	}
	if raw["language"] != "en" {
		t.Errorf("language = %v, want %q", raw["language"], "en")
	}
	if _, ok := raw["voice_agent"]; ok {
		t.Error("payload should omit empty voice_agent")
	}
}

func TestNewRequestVoiceCode(t *testing.T) {
	req := NewRequest("Brief", "anushka (Female/Hi)", Hindi)
	if req.VoiceID != "anushka" {
		t.Errorf("voice = %q, want %q", req.VoiceID, "anushka")
	}
	if req.Payload().Language != "hi" {
		t.Errorf("language = %q, want %q", req.Payload().Language, "hi")
	}
}

func TestResponseSuccess(t *testing.T) {
	j := `{"status":"ok","scripts":{"eng_pod":"Hello","hin_pod":"नमस्ते"},"audio":{"eng_pod_audio":"/audio/en.mp3"}}`

	var resp GenerateResponse
	if err := json.Unmarshal([]byte(j), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Status != StatusOK {
		t.Errorf("status = %q, want %q", resp.Status, StatusOK)
	}
	if resp.Scripts.English != "Hello" || resp.Scripts.Hindi != "नमस्ते" {
		t.Errorf("scripts = %+v", resp.Scripts)
	}
	if resp.Audio.English != "/audio/en.mp3" || resp.Audio.Hindi != "" {
		t.Errorf("audio = %+v", resp.Audio)
	}
}

func TestResponseError(t *testing.T) {
	j := `{"status":"error","error":"quota exceeded"}`

	var resp GenerateResponse
	if err := json.Unmarshal([]byte(j), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Status != StatusError {
		t.Errorf("status = %q, want %q", resp.Status, StatusError)
	}
	if resp.Error != "quota exceeded" {
		t.Errorf("error = %q, want %q", resp.Error, "quota exceeded")
	}
}

func TestErrorBodyMessage(t *testing.T) {
	var eb errorBody
	json.Unmarshal([]byte(`{"detail":"Insufficient verified updates"}`), &eb)
	if eb.message() != "Insufficient verified updates" {
		t.Errorf("message = %q", eb.message())
	}

	eb = errorBody{}
	json.Unmarshal([]byte(`{"detail":[{"loc":["body","name"],"msg":"field required"}]}`), &eb)
	if eb.message() != "" {
		t.Errorf("validation detail should not be used verbatim, got %q", eb.message())
	}
}

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{"hi": Hindi, "Hindi": Hindi, "EN": English, "english": English, "both": Both}
	for in, want := range cases {
		got, err := ParseLanguage(in)
		if err != nil {
			t.Errorf("ParseLanguage(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLanguage(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLanguage("fr"); err == nil {
		t.Error("expected error for unknown language")
	}
}
