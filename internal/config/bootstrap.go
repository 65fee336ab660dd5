package config

import (
	"context"
	"errors"

	"github.com/dd13556li/count/internal/delivery/http/handler"
	"github.com/dd13556li/count/internal/delivery/http/middleware"
	"github.com/dd13556li/count/internal/delivery/http/repository"
	"github.com/dd13556li/count/internal/delivery/http/route"
	"github.com/dd13556li/count/internal/delivery/http/usecase"
	"github.com/dd13556li/count/internal/pkg/tts"
	"github.com/dd13556li/count/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
	// Synthesizer overrides the Google client built from tts.google.*.
	Synthesizer tts.Synthesizer
}

// Application holds the usecases main needs after the routes are set up.
type Application struct {
	Settings    usecase.GameSettings
	Games       usecase.CountingGameUsecase
	SpeechAudio usecase.SpeechAudioUsecase
}

func Bootstrap(config *BootstrapConfig) (*Application, error) {
	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	settings, err := NewGameSettings(config.Config)
	if err != nil {
		return nil, err
	}

	synthesizer := config.Synthesizer
	if synthesizer == nil {
		client, err := tts.NewGoogleClient(
			context.Background(),
			config.Config.GetString("tts.google.api_key"),
			config.Config.GetString("tts.google.voice"),
			settings.Speech.Rate,
		)
		switch {
		case errors.Is(err, tts.ErrUnavailable):
			config.Log.Info("server speech synthesis disabled")
		case err != nil:
			return nil, err
		default:
			synthesizer = client
		}
	}

	var speechAudioRepo repository.SpeechAudioRepository
	if config.DB != nil {
		speechAudioRepo = repository.NewSpeechAudioRepository(config.DB)
	}
	speechAudioUsecase := usecase.NewSpeechAudioUsecase(usecase.SpeechAudioConfig{
		DB:          config.DB,
		Repository:  speechAudioRepo,
		Synthesizer: synthesizer,
		Lang:        settings.Speech.Lang,
		Log:         config.Log,
	})
	speechAudioHandler := handler.NewSpeechAudioHandler(config.Validator, config.Log, speechAudioUsecase)

	countingGameUsecase := usecase.NewCountingGameUsecase(usecase.CountingGameConfig{
		Settings: settings,
		Log:      config.Log,
	})
	countingGameHandler := handler.NewCountingGameHandler(config.Validator, config.Log, countingGameUsecase)

	route.Setup(&route.RouteConfig{
		Api:                 config.Api,
		Middleware:          mid,
		CountingGameHandler: countingGameHandler,
		SpeechAudioHandler:  speechAudioHandler,
	})

	return &Application{
		Settings:    settings,
		Games:       countingGameUsecase,
		SpeechAudio: speechAudioUsecase,
	}, nil
}
