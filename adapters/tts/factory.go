package tts

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/domain/repositories"
	"github.com/satriahrh/pdfvoice/internal/config"
)

// Provider names accepted in TTS_PROVIDER
const (
	ProviderGTTS       = "gtts"
	ProviderElevenLabs = "elevenlabs"
	ProviderYandex     = "yandex"
	ProviderMock       = "mock"
)

// NewProvider returns the TextToSpeech selected by cfg.TTSProvider.
// Providers holding connections also implement io.Closer.
func NewProvider(cfg *config.Config, logger *zap.Logger) (repositories.TextToSpeech, error) {
	logger = logger.With(zap.String("provider", cfg.TTSProvider))

	switch cfg.TTSProvider {
	case ProviderGTTS, "":
		return NewGoogleTranslateTTS(GTTSConfig{TLD: cfg.GTTSTLD}, logger), nil
	case ProviderElevenLabs:
		return NewElevenLabsTTS(ElevenLabsConfig{
			APIKey:       cfg.ElevenLabsAPIKey,
			APIBaseURL:   cfg.ElevenLabsBaseURL,
			VoiceID:      cfg.ElevenLabsVoiceID,
			ModelID:      cfg.ElevenLabsModelID,
			OutputFormat: cfg.ElevenLabsOutputFormat,
			Stability:    cfg.ElevenLabsStability,
			Clarity:      cfg.ElevenLabsClarity,
		}, logger)
	case ProviderYandex:
		return NewYandexTTS(YandexConfig{
			APIKey:   cfg.YandexAPIKey,
			FolderID: cfg.YandexFolderID,
			Voice:    cfg.YandexVoice,
		}, logger)
	case ProviderMock:
		return NewMockTextToSpeech(logger), nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider %q", cfg.TTSProvider)
	}
}
