package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd13556li/count/database"
	"github.com/dd13556li/count/internal/config"
	"github.com/dd13556li/count/internal/pkg/validate"
)

func main() {
	viperConfig := config.NewViper()

	log := config.NewLogger(viperConfig)
	db := database.New(viperConfig)
	validator := validate.NewValidator()
	api := config.NewAPI(viperConfig, log)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Migrations completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	app, err := config.Bootstrap(&config.BootstrapConfig{
		Config:    viperConfig,
		Log:       log,
		Api:       api,
		Validator: validator,
		DB:        db,
	})
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}

	if viperConfig.GetBool("tts.warm_on_start") {
		go func() {
			if err := database.SeedSpeechCache(ctx, app.SpeechAudio, app.Settings.Profiles, app.Settings.Speech.Lang, log); err != nil {
				log.Warnf("Failed to seed speech cache: %v", err)
			}
		}()
	}

	go app.Games.RunJanitor(ctx, viperConfig.GetDuration("game.janitor_interval"))

	listenAddr := viperConfig.GetString("api.listen")

	go func() {
		if err := api.Listen(listenAddr); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("API shutdown error: %v", err)
	}

	app.Games.Shutdown()
}
