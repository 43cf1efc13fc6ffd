package tts

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"strings"

	ytts "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/tts/v3"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"

	"github.com/satriahrh/pdfvoice/domain/repositories"
)

const (
	YandexTTSEndpoint  = "tts.api.cloud.yandex.net:443"
	defaultYandexModel = "general"
)

// SpeechKit has no language field; each voice speaks one language.
var yandexVoicesByLanguage = map[string]string{
	"en": "john",
	"ru": "alena",
	"de": "lea",
	"kk": "amira",
	"uz": "nigora",
	"he": "naomi",
}

// YandexConfig holds configuration for the Yandex SpeechKit adapter
type YandexConfig struct {
	APIKey   string
	FolderID string
	// Voice pins a voice for every request; empty picks one per language.
	Voice string
}

// YandexTTS implements TextToSpeech using Yandex SpeechKit v3 over gRPC
type YandexTTS struct {
	client   ytts.SynthesizerClient
	conn     *grpc.ClientConn
	apiKey   string
	folderID string
	voice    string
	logger   *zap.Logger
}

// Ensure YandexTTS implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*YandexTTS)(nil)

// NewYandexTTS opens a gRPC connection to SpeechKit
func NewYandexTTS(config YandexConfig, logger *zap.Logger) (*YandexTTS, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("yandex API key is required")
	}
	if config.FolderID == "" {
		return nil, fmt.Errorf("yandex folder ID is required")
	}

	creds := credentials.NewTLS(&tls.Config{})
	conn, err := grpc.Dial(YandexTTSEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TTS service: %w", err)
	}

	return &YandexTTS{
		client:   ytts.NewSynthesizerClient(conn),
		conn:     conn,
		apiKey:   config.APIKey,
		folderID: config.FolderID,
		voice:    config.Voice,
		logger:   logger,
	}, nil
}

// SynthesizeAudio streams an utterance synthesis and collects the MP3 chunks
func (y *YandexTTS) SynthesizeAudio(ctx context.Context, text string, config repositories.VoiceConfig) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	voice, err := yandexVoice(y.voice, config)
	if err != nil {
		return nil, err
	}

	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Api-Key "+y.apiKey)
	ctx = metadata.AppendToOutgoingContext(ctx, "x-folder-id", y.folderID)

	stream, err := y.client.UtteranceSynthesis(ctx, buildYandexRequest(text, voice))
	if err != nil {
		return nil, fmt.Errorf("failed to start synthesis: %w", err)
	}

	var buf bytes.Buffer
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to receive audio data: %w", err)
		}
		if chunk := resp.GetAudioChunk(); chunk != nil {
			buf.Write(chunk.GetData())
		}
	}

	y.logger.Debug("Received audio from SpeechKit",
		zap.String("voice", voice),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// yandexVoice resolves the voice for a request. An explicit voice wins,
// otherwise the language decides.
func yandexVoice(configured string, config repositories.VoiceConfig) (string, error) {
	if config.Voice != "" {
		return config.Voice, nil
	}
	if configured != "" {
		return configured, nil
	}

	language := config.Language
	if language == "" {
		language = "en"
	}
	voice, ok := yandexVoicesByLanguage[strings.ToLower(language)]
	if !ok {
		return "", fmt.Errorf("no SpeechKit voice for language %q", language)
	}
	return voice, nil
}

func buildYandexRequest(text, voice string) *ytts.UtteranceSynthesisRequest {
	req := &ytts.UtteranceSynthesisRequest{}
	req.SetModel(defaultYandexModel)
	req.SetText(text)

	voiceHint := &ytts.Hints{}
	voiceHint.SetVoice(voice)
	req.SetHints([]*ytts.Hints{voiceHint})

	containerAudio := &ytts.ContainerAudio{}
	containerAudio.SetContainerAudioType(ytts.ContainerAudio_MP3)
	audioSpec := &ytts.AudioFormatOptions{}
	audioSpec.SetContainerAudio(containerAudio)
	req.SetOutputAudioSpec(audioSpec)

	req.SetLoudnessNormalizationType(ytts.UtteranceSynthesisRequest_LUFS)

	return req
}

// Close releases the gRPC connection
func (y *YandexTTS) Close() error {
	return y.conn.Close()
}
