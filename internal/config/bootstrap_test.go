package config

import (
	"io"
	"testing"

	"github.com/dd13556li/count/internal/game/round"
	"github.com/dd13556li/count/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func newBootstrapConfig(t *testing.T) *BootstrapConfig {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &BootstrapConfig{
		Api:       fiber.New(),
		Config:    defaultViper(),
		Log:       log,
		Validator: validate.NewValidator(),
	}
}

func TestBootstrapReturnsValidatedSettings(t *testing.T) {
	c := newBootstrapConfig(t)
	c.Config.Set("game.total_turns", 4)

	app, err := Bootstrap(c)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(app.Games.Shutdown)

	if app.Settings.Rules.TotalTurns != 4 {
		t.Fatalf("total turns = %d, want 4", app.Settings.Rules.TotalTurns)
	}
	if diff := cmp.Diff(round.DefaultProfiles(), app.Settings.Profiles); diff != "" {
		t.Fatalf("profiles (-want +got):\n%s", diff)
	}
}

func TestBootstrapRejectsInvalidSettings(t *testing.T) {
	c := newBootstrapConfig(t)
	c.Config.Set("game.points_per_correct", 0)

	if _, err := Bootstrap(c); err == nil {
		t.Fatal("expected an error")
	}
}
