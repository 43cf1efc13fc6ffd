package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/satriahrh/pdfvoice/domain/repositories"
)

const (
	defaultGTTSTLD         = "com"
	defaultGTTSTimeout     = 30 * time.Second
	defaultGTTSConcurrency = 4

	// The endpoint rejects longer inputs, so text is cut into segments.
	gttsMaxSegment = 100
	gttsUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

var (
	gttsBoundary    = regexp.MustCompile(`[.!?;:,¡¿。，、…\n]+`)
	gttsOnlyPunctRe = regexp.MustCompile(`^[\s\p{P}]*$`)
)

// GTTSConfig holds configuration for the Google Translate TTS adapter
type GTTSConfig struct {
	TLD         string        // Optional: top level domain of the translate host (default: "com")
	BaseURL     string        // Optional: overrides the full host, mostly for tests
	Timeout     time.Duration // Optional: per request timeout (default: 30s)
	Concurrency int           // Optional: parallel segment requests (default: 4)
}

// GoogleTranslateTTS implements TextToSpeech against the Google Translate
// speech endpoint, returning MP3 audio.
type GoogleTranslateTTS struct {
	baseURL     string
	concurrency int
	client      *http.Client
	logger      *zap.Logger
}

// Ensure GoogleTranslateTTS implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*GoogleTranslateTTS)(nil)

// NewGoogleTranslateTTS creates a new Google Translate TTS instance
func NewGoogleTranslateTTS(config GTTSConfig, logger *zap.Logger) *GoogleTranslateTTS {
	tld := config.TLD
	if tld == "" {
		tld = defaultGTTSTLD
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://translate.google.%s", tld)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultGTTSTimeout
	}

	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultGTTSConcurrency
	}

	return &GoogleTranslateTTS{
		baseURL:     strings.TrimRight(baseURL, "/"),
		concurrency: concurrency,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// SynthesizeAudio converts text to MP3. Segments are fetched concurrently
// and joined in their original order.
func (g *GoogleTranslateTTS) SynthesizeAudio(ctx context.Context, text string, config repositories.VoiceConfig) ([]byte, error) {
	segments := splitText(text, gttsMaxSegment)
	if len(segments) == 0 {
		return nil, fmt.Errorf("no text to speak")
	}

	lang := config.Language
	if lang == "" {
		lang = "en"
	}

	g.logger.Info("Converting text to speech",
		zap.Int("textLength", len(text)),
		zap.Int("segments", len(segments)),
		zap.String("language", lang))

	parts := make([][]byte, len(segments))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, segment := range segments {
		i, segment := i, segment
		eg.Go(func() error {
			audio, err := g.fetchSegment(egCtx, segment, lang, i, len(segments))
			if err != nil {
				return fmt.Errorf("segment %d: %w", i, err)
			}
			parts[i] = audio
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return bytes.Join(parts, nil), nil
}

func (g *GoogleTranslateTTS) fetchSegment(ctx context.Context, segment, lang string, idx, total int) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", segment)
	params.Set("tl", lang)
	params.Set("total", strconv.Itoa(total))
	params.Set("idx", strconv.Itoa(idx))
	params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(segment)))
	params.Set("client", "tw-ob")
	params.Set("ttsspeed", "1")

	endpoint := g.baseURL + "/translate_tts?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", gttsUserAgent)
	req.Header.Set("Referer", g.baseURL+"/")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("translate TTS returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	g.logger.Debug("Received audio segment",
		zap.Int("index", idx),
		zap.Int("bytes", len(audio)))

	return audio, nil
}

// splitText cuts text at punctuation and then at whitespace so that no
// segment exceeds max runes. Segments without speakable characters are dropped.
func splitText(text string, max int) []string {
	var segments []string

	for _, piece := range splitKeepingBoundaries(text) {
		piece = strings.TrimSpace(piece)
		if gttsOnlyPunctRe.MatchString(piece) {
			continue
		}
		segments = append(segments, minimize(piece, max)...)
	}

	return segments
}

// splitKeepingBoundaries splits after each punctuation run, keeping the
// punctuation attached to the preceding piece.
func splitKeepingBoundaries(text string) []string {
	var pieces []string
	last := 0
	for _, loc := range gttsBoundary.FindAllStringIndex(text, -1) {
		pieces = append(pieces, text[last:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		pieces = append(pieces, text[last:])
	}
	return pieces
}

func minimize(text string, max int) []string {
	var out []string
	for utf8.RuneCountInString(text) > max {
		runes := []rune(text)
		cut := max
		for i := max; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		head := strings.TrimSpace(string(runes[:cut]))
		if head != "" {
			out = append(out, head)
		}
		text = strings.TrimSpace(string(runes[cut:]))
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}
