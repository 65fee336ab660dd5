package tts

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/texttospeech/v1"
)

// ErrUnavailable is returned when no synthesizer is configured.
var ErrUnavailable = errors.New("speech synthesis unavailable")

const ContentTypeMP3 = "audio/mpeg"

// Synthesizer turns text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

type GoogleClient struct {
	service *texttospeech.Service
	voice   string
	rate    float64
}

func NewGoogleClient(ctx context.Context, apiKey, voice string, rate float64) (*GoogleClient, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	service, err := texttospeech.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create texttospeech service: %w", err)
	}
	return &GoogleClient{service: service, voice: voice, rate: rate}, nil
}

func (c *GoogleClient) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: LanguageCode(lang),
			Name:         c.voice,
		},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  c.rate,
		},
	}

	resp, err := c.service.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("synthesize %q: %w", text, err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio, nil
}

// LanguageCode maps a browser language tag to the Cloud TTS code.
// Cloud TTS names Taiwanese Mandarin cmn-TW.
func LanguageCode(lang string) string {
	switch strings.ToLower(lang) {
	case "", "zh-tw", "zh-hant-tw":
		return "cmn-TW"
	}
	return lang
}

// CacheKey identifies one synthesized phrase.
func CacheKey(text, lang string) string {
	h := sha256.Sum256([]byte(lang + ":" + text))
	return hex.EncodeToString(h[:16])
}
