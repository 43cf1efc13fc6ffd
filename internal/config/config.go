package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings injected at startup.
type Config struct {
	Port   string
	AppEnv string

	UploadDir string
	AudioDir  string
	QRDir     string

	// QRIsolated writes every generated QR image under its own id in
	// addition to the shared latest image.
	QRIsolated bool

	// MaxUploadMB limits request bodies; 0 disables the limit.
	MaxUploadMB int

	TTSProvider string
	TTSLanguage string
	GTTSTLD     string

	ElevenLabsAPIKey       string
	ElevenLabsBaseURL      string
	ElevenLabsVoiceID      string
	ElevenLabsModelID      string
	ElevenLabsOutputFormat string
	// Voice settings between 0 and 1; 0 selects the provider default.
	ElevenLabsStability float64
	ElevenLabsClarity   float64

	YandexAPIKey   string
	YandexFolderID string
	// YandexVoice pins a voice; empty picks one for TTSLanguage.
	YandexVoice string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "production"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		AudioDir:    getEnv("AUDIO_DIR", "audio"),
		QRDir:       getEnv("QR_DIR", "static"),
		QRIsolated:  getBool("QR_ISOLATED", true),
		MaxUploadMB: getInt("MAX_UPLOAD_MB", 0),
		TTSProvider: strings.ToLower(getEnv("TTS_PROVIDER", "gtts")),
		TTSLanguage: getEnv("TTS_LANGUAGE", "en"),
		GTTSTLD:     getEnv("GTTS_TLD", "com"),

		ElevenLabsAPIKey:       os.Getenv("ELEVEN_LABS_API_KEY"),
		ElevenLabsBaseURL:      os.Getenv("ELEVEN_LABS_API_BASE_URL"),
		ElevenLabsVoiceID:      os.Getenv("ELEVEN_LABS_VOICE_ID"),
		ElevenLabsModelID:      os.Getenv("ELEVEN_LABS_MODEL_ID"),
		ElevenLabsOutputFormat: os.Getenv("ELEVEN_LABS_OUTPUT_FORMAT"),
		ElevenLabsStability:    getUnitFloat("ELEVEN_LABS_STABILITY"),
		ElevenLabsClarity:      getUnitFloat("ELEVEN_LABS_CLARITY"),

		YandexAPIKey:   os.Getenv("YANDEX_API_KEY"),
		YandexFolderID: os.Getenv("YANDEX_FOLDER_ID"),
		YandexVoice:    os.Getenv("YANDEX_VOICE"),
	}
}

// IsDevelopment reports whether the development logger should be used.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// getUnitFloat reads a value in [0, 1]; anything else yields 0.
func getUnitFloat(key string) float64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return 0
	}
	return f
}
