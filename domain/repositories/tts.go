package repositories

import "context"

// TextToSpeech abstracts text-to-speech services
type TextToSpeech interface {
	// SynthesizeAudio converts text to MP3 audio data
	SynthesizeAudio(ctx context.Context, text string, config VoiceConfig) ([]byte, error)
}

// VoiceConfig represents voice configuration for TTS
type VoiceConfig struct {
	Language string `json:"language"`
	Voice    string `json:"voice,omitempty"`
}

// AudioProbe inspects synthesized audio
type AudioProbe interface {
	// Duration returns the playback length of the audio file at path, in seconds
	Duration(path string) (float64, error)
}
