package usecase

import (
	"context"
	"errors"

	"github.com/dd13556li/count/internal/delivery/http/repository"
	"github.com/dd13556li/count/internal/entity"
	"github.com/dd13556li/count/internal/pkg/tts"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	SpeechAudioUsecase interface {
		// Synthesize returns audio for text, from the cache when possible.
		Synthesize(ctx context.Context, text, lang string) ([]byte, string, error)
		// Warm synthesizes every phrase not yet cached and reports how many
		// were added.
		Warm(ctx context.Context, phrases []string, lang string) (int, error)
	}

	SpeechAudioConfig struct {
		DB          *gorm.DB
		Repository  repository.SpeechAudioRepository
		Synthesizer tts.Synthesizer
		Lang        string
		Log         *logrus.Logger
	}

	speechAudioUsecase struct {
		db          *gorm.DB
		repo        repository.SpeechAudioRepository
		synthesizer tts.Synthesizer
		lang        string
		log         logrus.FieldLogger
	}
)

func NewSpeechAudioUsecase(c SpeechAudioConfig) SpeechAudioUsecase {
	lang := c.Lang
	if lang == "" {
		lang = "zh-TW"
	}
	return &speechAudioUsecase{
		db:          c.DB,
		repo:        c.Repository,
		synthesizer: c.Synthesizer,
		lang:        lang,
		log:         c.Log.WithField("component", "tts"),
	}
}

func (u *speechAudioUsecase) Synthesize(ctx context.Context, text, lang string) ([]byte, string, error) {
	if lang == "" {
		lang = u.lang
	}
	key := tts.CacheKey(text, lang)

	cached, err := u.lookup(key)
	if err == nil {
		if err := u.repo.IncrementHitCount(u.db, key); err != nil {
			u.log.WithError(err).Warn("failed to record cache hit")
		}
		return cached.Audio, cached.ContentType, nil
	}

	audio, err := u.synthesize(ctx, key, text, lang)
	if err != nil {
		return nil, "", err
	}
	return audio, tts.ContentTypeMP3, nil
}

func (u *speechAudioUsecase) Warm(ctx context.Context, phrases []string, lang string) (int, error) {
	if u.synthesizer == nil {
		return 0, tts.ErrUnavailable
	}
	if lang == "" {
		lang = u.lang
	}

	added := 0
	for _, text := range phrases {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		key := tts.CacheKey(text, lang)
		if _, err := u.lookup(key); err == nil {
			continue
		}
		if _, err := u.synthesize(ctx, key, text, lang); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (u *speechAudioUsecase) lookup(key string) (*entity.SpeechAudio, error) {
	if u.repo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	audio, err := u.repo.FindByCacheKey(u.db, key)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		u.log.WithError(err).Warn("speech cache lookup failed")
	}
	return audio, err
}

func (u *speechAudioUsecase) synthesize(ctx context.Context, key, text, lang string) ([]byte, error) {
	if u.synthesizer == nil {
		return nil, tts.ErrUnavailable
	}
	audio, err := u.synthesizer.Synthesize(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	if u.repo != nil {
		row := &entity.SpeechAudio{
			CacheKey:    key,
			Lang:        lang,
			Text:        text,
			ContentType: tts.ContentTypeMP3,
			Audio:       audio,
		}
		if err := u.repo.Create(u.db, row); err != nil {
			u.log.WithError(err).Warn("failed to cache synthesized speech")
		}
	}
	return audio, nil
}
