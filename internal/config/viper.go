package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	SetDefaults(config)

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	return config
}

// SetDefaults registers every setting the service reads, so it can run
// without a config file.
func SetDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "count")
	config.SetDefault("api.listen", ":8080")
	config.SetDefault("api.prefork", false)
	config.SetDefault("api.cors.origins", "*")

	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")
	config.SetDefault("log.access_poll", false)

	config.SetDefault("database.driver", "sqlite")
	config.SetDefault("database.path", "count.db")
	config.SetDefault("database.port", 5432)

	config.SetDefault("game.total_turns", 10)
	config.SetDefault("game.points_per_correct", 10)
	config.SetDefault("game.next_turn_delay", 1500*time.Millisecond)
	config.SetDefault("game.idle_ttl", 30*time.Minute)
	config.SetDefault("game.janitor_interval", time.Minute)
	config.SetDefault("game.outbox_capacity", 512)

	config.SetDefault("speech.lang", "zh-TW")
	config.SetDefault("speech.rate", 1.2)
	config.SetDefault("speech.gap", 50*time.Millisecond)
	config.SetDefault("speech.silent_delay", 600*time.Millisecond)

	config.SetDefault("tts.google.api_key", "")
	config.SetDefault("tts.google.voice", "cmn-TW-Wavenet-A")
	config.SetDefault("tts.warm_on_start", false)
}
