package database

import (
	"context"
	"fmt"

	"github.com/dd13556li/count/internal/game"
	"github.com/dd13556li/count/internal/game/round"
	"github.com/sirupsen/logrus"
)

// SpeechWarmer synthesizes and caches phrases ahead of time.
type SpeechWarmer interface {
	Warm(ctx context.Context, phrases []string, lang string) (int, error)
}

// SeedSpeechCache pre-synthesizes every fixed narration line so the first
// game does not wait on the TTS provider.
func SeedSpeechCache(ctx context.Context, warmer SpeechWarmer, profiles map[string]round.Profile, lang string, log logrus.FieldLogger) error {
	phrases := game.Phrases(profiles)
	log.WithField("phrases", len(phrases)).Info("warming speech cache")

	added, err := warmer.Warm(ctx, phrases, lang)
	if err != nil {
		return fmt.Errorf("warm speech cache: %w", err)
	}

	log.WithField("added", added).Info("speech cache warmed")
	return nil
}
