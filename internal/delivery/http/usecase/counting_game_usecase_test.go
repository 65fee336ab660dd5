package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dd13556li/count/internal/delivery/http/entity"
	"github.com/dd13556li/count/internal/game"
	"github.com/dd13556li/count/internal/game/remote"
	"github.com/dd13556li/count/internal/game/round"
	"github.com/dd13556li/count/internal/game/speech"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fastSettings() GameSettings {
	return GameSettings{
		Rules: game.Rules{
			TotalTurns:       1,
			PointsPerCorrect: 10,
			NextTurnDelay:    time.Millisecond,
		},
		Profiles:       round.DefaultProfiles(),
		Speech:         speech.Options{Gap: 0},
		SilentDelay:    time.Millisecond,
		OutboxCapacity: 1024,
		IdleTTL:        time.Minute,
	}
}

func newTestUsecase(t *testing.T) CountingGameUsecase {
	t.Helper()
	u := NewCountingGameUsecase(CountingGameConfig{Settings: fastSettings(), Log: quietLogger()})
	t.Cleanup(u.Shutdown)
	return u
}

// waitFor polls the game until cond holds.
func waitFor(t *testing.T, u CountingGameUsecase, id string, cond func(*entity.GameResponse) bool) *entity.GameResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		res, err := u.Get(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if cond(res) {
			return res
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached, last state %+v", res.Snapshot)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestDifficultiesAreOrdered(t *testing.T) {
	u := newTestUsecase(t)
	var keys []string
	for _, d := range u.Difficulties(context.Background()) {
		keys = append(keys, d.Key)
	}
	want := []string{round.Easy, round.Medium, round.Hard, round.Extreme}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("difficulties (-want +got):\n%s", diff)
	}
}

func TestCreateAndGet(t *testing.T) {
	u := newTestUsecase(t)
	ctx := context.Background()

	created, err := u.Create(ctx, entity.CreateGameRequest{Mode: "user"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("empty game id")
	}
	if created.Phase != game.PhaseSelecting || created.Mode != game.ModeUser {
		t.Fatalf("phase %q mode %q", created.Phase, created.Mode)
	}
	if created.SpeechBackend != SpeechBackendSilent {
		t.Fatalf("speech backend = %q", created.SpeechBackend)
	}
	if created.LastSeq == 0 {
		t.Fatal("start overlay was not queued")
	}

	got, err := u.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != created.ID {
		t.Fatalf("got game %q, want %q", got.ID, created.ID)
	}
}

func TestUnknownGame(t *testing.T) {
	u := newTestUsecase(t)
	if _, err := u.Get(context.Background(), "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
	if err := u.Leave(context.Background(), "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestUnknownDifficulty(t *testing.T) {
	u := newTestUsecase(t)
	g, err := u.Create(context.Background(), entity.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = u.SelectDifficulty(context.Background(), g.ID, "impossible")
	if !errors.Is(err, game.ErrUnknownDifficulty) {
		t.Fatalf("err = %v, want ErrUnknownDifficulty", err)
	}
}

func TestIgnoredOperationIsNotAccepted(t *testing.T) {
	u := newTestUsecase(t)
	g, err := u.Create(context.Background(), entity.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := u.SubmitAnswer(context.Background(), g.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Fatal("answer accepted before a round started")
	}
	if res.Game.Phase != game.PhaseSelecting {
		t.Fatalf("phase = %q", res.Game.Phase)
	}
}

func TestSilentGamePlaysToSummary(t *testing.T) {
	u := newTestUsecase(t)
	ctx := context.Background()

	g, err := u.Create(ctx, entity.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := u.SelectDifficulty(ctx, g.ID, round.Easy)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.Game.Phase != game.PhasePlaying {
		t.Fatalf("round not started: %+v", res)
	}

	ready := waitFor(t, u, g.ID, func(r *entity.GameResponse) bool {
		return r.Current != nil && r.Current.OptionsEnabled
	})
	if ready.Current.CorrectAnswer != 0 {
		t.Fatal("answer revealed before submission")
	}

	answer, err := u.SubmitAnswer(ctx, g.ID, ready.Current.Options[0])
	if err != nil {
		t.Fatal(err)
	}
	if !answer.Accepted {
		t.Fatal("answer not accepted")
	}

	done := waitFor(t, u, g.ID, func(r *entity.GameResponse) bool {
		return r.Phase == game.PhaseSummary
	})
	if done.Summary == nil || done.Summary.Total != 1 {
		t.Fatalf("summary = %+v", done.Summary)
	}
	if done.Score != done.Summary.Score {
		t.Fatalf("score %d, summary score %d", done.Score, done.Summary.Score)
	}
}

func TestClientSpeechReports(t *testing.T) {
	u := newTestUsecase(t)
	ctx := context.Background()

	g, err := u.Create(ctx, entity.CreateGameRequest{Speech: true})
	if err != nil {
		t.Fatal(err)
	}
	if g.SpeechBackend != SpeechBackendClient {
		t.Fatalf("speech backend = %q", g.SpeechBackend)
	}
	if _, err := u.SelectDifficulty(ctx, g.ID, round.Easy); err != nil {
		t.Fatal(err)
	}

	cmds, err := u.Commands(ctx, g.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	var id string
	for _, c := range cmds.Commands {
		if c.Type == remote.CommandSpeechSpeak {
			id, _ = c.Data["id"].(string)
		}
	}
	if id == "" {
		t.Fatal("no speech.speak command queued")
	}

	for _, ev := range []string{"start", "end"} {
		if err := u.ReportSpeech(ctx, g.ID, id, entity.PlaybackEventRequest{Event: ev}); err != nil {
			t.Fatalf("report %s: %v", ev, err)
		}
	}
	err = u.ReportSpeech(ctx, g.ID, id, entity.PlaybackEventRequest{Event: "end"})
	if !errors.Is(err, remote.ErrUnknownPlayback) {
		t.Fatalf("second end: err = %v, want ErrUnknownPlayback", err)
	}

	later, err := u.Commands(ctx, g.ID, cmds.LastSeq)
	if err != nil {
		t.Fatal(err)
	}
	if len(later.Commands) == 0 {
		t.Fatal("finishing the prompt queued nothing")
	}
}

func TestCommandsReportTruncation(t *testing.T) {
	settings := fastSettings()
	settings.OutboxCapacity = 2
	u := NewCountingGameUsecase(CountingGameConfig{Settings: settings, Log: quietLogger()})
	t.Cleanup(u.Shutdown)
	ctx := context.Background()

	// client speech holds the turn on the prompt until it is reported
	g, err := u.Create(ctx, entity.CreateGameRequest{Speech: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := u.SelectDifficulty(ctx, g.ID, round.Easy); err != nil {
		t.Fatal(err)
	}

	cmds, err := u.Commands(ctx, g.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !cmds.Truncated || len(cmds.Commands) != 2 || cmds.OldestSeq != cmds.LastSeq-1 {
		t.Fatalf("after 0: truncated = %v, %d commands, oldest = %d, last = %d",
			cmds.Truncated, len(cmds.Commands), cmds.OldestSeq, cmds.LastSeq)
	}

	tail, err := u.Commands(ctx, g.ID, cmds.LastSeq-2)
	if err != nil {
		t.Fatal(err)
	}
	if tail.Truncated || len(tail.Commands) != 2 {
		t.Errorf("retained tail: truncated = %v, %d commands", tail.Truncated, len(tail.Commands))
	}
}

func TestSilentGameRejectsPlaybackReports(t *testing.T) {
	u := newTestUsecase(t)
	g, err := u.Create(context.Background(), entity.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}
	req := entity.PlaybackEventRequest{Event: "end"}
	if err := u.ReportSpeech(context.Background(), g.ID, "x", req); !errors.Is(err, remote.ErrUnknownPlayback) {
		t.Fatalf("speech: err = %v", err)
	}
	if err := u.ReportSound(context.Background(), g.ID, "x", req); !errors.Is(err, remote.ErrUnknownPlayback) {
		t.Fatalf("sound: err = %v", err)
	}
}

func TestLeaveRemovesGame(t *testing.T) {
	u := newTestUsecase(t)
	g, err := u.Create(context.Background(), entity.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Leave(context.Background(), g.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := u.Get(context.Background(), g.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestEvictIdle(t *testing.T) {
	u := newTestUsecase(t)
	g, err := u.Create(context.Background(), entity.CreateGameRequest{})
	if err != nil {
		t.Fatal(err)
	}

	if n := u.EvictIdle(time.Now()); n != 0 {
		t.Fatalf("evicted %d fresh games", n)
	}
	if n := u.EvictIdle(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("evicted %d games, want 1", n)
	}
	if _, err := u.Get(context.Background(), g.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestCanceledContext(t *testing.T) {
	u := newTestUsecase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := u.Create(ctx, entity.CreateGameRequest{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
