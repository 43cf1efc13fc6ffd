package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/domain/entities"
	"github.com/satriahrh/pdfvoice/domain/repositories"
)

// SpeechSynthesizer turns text into an audio file in the audio storage area
type SpeechSynthesizer struct {
	textToSpeech repositories.TextToSpeech
	storage      repositories.FileStorage
	probe        repositories.AudioProbe
	voice        repositories.VoiceConfig
	logger       *zap.Logger
}

// NewSpeechSynthesizer creates a new speech synthesizer. probe may be nil.
func NewSpeechSynthesizer(
	tts repositories.TextToSpeech,
	storage repositories.FileStorage,
	probe repositories.AudioProbe,
	voice repositories.VoiceConfig,
	logger *zap.Logger,
) *SpeechSynthesizer {
	return &SpeechSynthesizer{
		textToSpeech: tts,
		storage:      storage,
		probe:        probe,
		voice:        voice,
		logger:       logger,
	}
}

// Synthesize passes text through unchanged to the TTS provider and writes the
// result under filename, overwriting any previous file.
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, text, filename string) (*entities.AudioFile, error) {
	s.logger.Debug("Converting text to audio",
		zap.String("filename", filename),
		zap.String("language", s.voice.Language))

	audio, err := s.textToSpeech.SynthesizeAudio(ctx, text, s.voice)
	if err != nil {
		s.logger.Error("Failed to convert text to audio",
			zap.String("filename", filename),
			zap.Error(err))
		return nil, fmt.Errorf("text-to-speech failed: %w", err)
	}

	if err := s.storage.WriteFile(repositories.AreaAudio, filename, audio); err != nil {
		s.logger.Error("Failed to save audio",
			zap.String("filename", filename),
			zap.Error(err))
		return nil, err
	}

	file := &entities.AudioFile{
		Filename: filename,
		Path:     s.storage.Path(repositories.AreaAudio, filename),
		Size:     int64(len(audio)),
	}

	if s.probe != nil {
		duration, err := s.probe.Duration(file.Path)
		if err != nil {
			s.logger.Warn("Could not determine audio duration",
				zap.String("filename", filename),
				zap.Error(err))
		} else {
			file.DurationSeconds = duration
		}
	}

	s.logger.Info("TTS completed",
		zap.String("filename", filename),
		zap.Int64("audioSize", file.Size),
		zap.Float64("durationSeconds", file.DurationSeconds))

	return file, nil
}
