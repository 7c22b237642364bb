package config

const (
	defaultConfigPath     = "~/.config/briefcast/config.toml"
	defaultBaseURL        = "http://localhost:8000/api/v1"
	defaultTimeoutSeconds = 300
	defaultDataDir        = "~/.local/share/briefcast"
	defaultLogDir         = "~/.local/share/briefcast/logs"
	defaultAudioDelayMS   = 1500
	defaultVoice          = "sachit (Male/En)"
	defaultLanguage       = "hi"
	defaultFFprobe        = "ffprobe"
	defaultTickMS         = 100
	defaultLogFormat      = "text"
	defaultLogLevel       = "info"

	minAudioDelayMS = 50
	maxAudioDelayMS = 10_000
)

// Voices lists the voice picker labels. The first word is the voice code.
var Voices = []string{"sachit (Male/En)", "anushka (Female/Hi)", "karan (Male/Hi)"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Service: Service{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Workflow: Workflow{
			AudioDelayMS:    defaultAudioDelayMS,
			DefaultVoice:    defaultVoice,
			DefaultLanguage: defaultLanguage,
		},
		Playback: Playback{
			FFprobe: defaultFFprobe,
			TickMS:  defaultTickMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
