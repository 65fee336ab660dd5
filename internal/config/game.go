package config

import (
	"fmt"
	"sort"

	"github.com/dd13556li/count/internal/delivery/http/usecase"
	"github.com/dd13556li/count/internal/game"
	"github.com/dd13556li/count/internal/game/round"
	"github.com/dd13556li/count/internal/game/speech"
	"github.com/spf13/viper"
)

// NewGameSettings reads the game rules, difficulty profiles, themes and
// speech timings, falling back to the built-in defaults.
func NewGameSettings(config *viper.Viper) (usecase.GameSettings, error) {
	settings := usecase.GameSettings{
		Rules: game.Rules{
			TotalTurns:       config.GetInt("game.total_turns"),
			PointsPerCorrect: config.GetInt("game.points_per_correct"),
			NextTurnDelay:    config.GetDuration("game.next_turn_delay"),
		},
		Profiles: round.DefaultProfiles(),
		Themes:   round.DefaultThemes(),
		Speech: speech.Options{
			Lang: config.GetString("speech.lang"),
			Rate: config.GetFloat64("speech.rate"),
			Gap:  config.GetDuration("speech.gap"),
		},
		SilentDelay:    config.GetDuration("speech.silent_delay"),
		OutboxCapacity: config.GetInt("game.outbox_capacity"),
		IdleTTL:        config.GetDuration("game.idle_ttl"),
	}

	if settings.Rules.TotalTurns < 1 {
		return settings, fmt.Errorf("game.total_turns must be at least 1")
	}
	if settings.Rules.PointsPerCorrect < 1 {
		return settings, fmt.Errorf("game.points_per_correct must be at least 1")
	}

	if config.IsSet("difficulties") {
		profiles := map[string]round.Profile{}
		if err := config.UnmarshalKey("difficulties", &profiles); err != nil {
			return settings, fmt.Errorf("difficulties: %w", err)
		}
		for key, p := range profiles {
			p.Key = key
			profiles[key] = p
		}
		settings.Profiles = profiles
	}
	if len(settings.Profiles) == 0 {
		return settings, fmt.Errorf("difficulties: at least one profile is required")
	}
	for _, p := range settings.Profiles {
		if err := p.Validate(); err != nil {
			return settings, err
		}
	}

	if config.IsSet("themes") {
		icons := map[string][]string{}
		if err := config.UnmarshalKey("themes", &icons); err != nil {
			return settings, fmt.Errorf("themes: %w", err)
		}
		themes := make([]round.Theme, 0, len(icons))
		for key, list := range icons {
			if len(list) == 0 {
				return settings, fmt.Errorf("theme %q has no icons", key)
			}
			themes = append(themes, round.Theme{Key: key, Icons: list})
		}
		sort.Slice(themes, func(i, j int) bool { return themes[i].Key < themes[j].Key })
		settings.Themes = themes
	}

	return settings, nil
}
