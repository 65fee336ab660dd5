package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dd13556li/count/internal/delivery/http/entity"
	"github.com/dd13556li/count/internal/game"
	"github.com/dd13556li/count/internal/game/eventloop"
	"github.com/dd13556li/count/internal/game/remote"
	"github.com/dd13556li/count/internal/game/round"
	"github.com/dd13556li/count/internal/game/speech"
	"github.com/dd13556li/count/internal/pkg/mapper"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrGameNotFound = errors.New("game not found")

const (
	SpeechBackendClient = "client"
	SpeechBackendSilent = "silent"
)

// GameSettings is the configuration shared by every game.
type GameSettings struct {
	Rules          game.Rules
	Profiles       map[string]round.Profile
	Themes         []round.Theme
	Speech         speech.Options
	SilentDelay    time.Duration
	OutboxCapacity int
	IdleTTL        time.Duration
}

type (
	CountingGameUsecase interface {
		Difficulties(ctx context.Context) []entity.DifficultyResponse
		Create(ctx context.Context, req entity.CreateGameRequest) (*entity.GameResponse, error)
		Get(ctx context.Context, id string) (*entity.GameResponse, error)
		Leave(ctx context.Context, id string) error
		SelectMode(ctx context.Context, id string, mode game.Mode) (*entity.ActionResponse, error)
		SelectDifficulty(ctx context.Context, id, difficulty string) (*entity.ActionResponse, error)
		SubmitAnswer(ctx context.Context, id string, value int) (*entity.ActionResponse, error)
		TapItem(ctx context.Context, id string, index int) (*entity.ActionResponse, error)
		HoverOption(ctx context.Context, id string, value int) (*entity.ActionResponse, error)
		PlayAgain(ctx context.Context, id string) (*entity.ActionResponse, error)
		UpdateVoices(ctx context.Context, id string, voices []speech.Voice) (*entity.ActionResponse, error)
		Commands(ctx context.Context, id string, after uint64) (*entity.CommandsResponse, error)
		ReportSpeech(ctx context.Context, id, utteranceID string, req entity.PlaybackEventRequest) error
		ReportSound(ctx context.Context, id, playID string, req entity.PlaybackEventRequest) error
		EvictIdle(now time.Time) int
		RunJanitor(ctx context.Context, interval time.Duration)
		Shutdown()
	}

	CountingGameConfig struct {
		Settings GameSettings
		Log      *logrus.Logger
		// Rand seeds each game's generator; nil uses math/rand.
		Rand func() round.Rand
	}

	countingGameUsecase struct {
		settings GameSettings
		log      *logrus.Logger
		rand     func() round.Rand

		mu    sync.Mutex
		games map[string]*liveGame
	}

	// liveGame is one game and the loop that owns it. Every field except
	// lastSeen is touched only on the loop.
	liveGame struct {
		id       string
		loop     *eventloop.Loop
		game     *game.Game
		outbox   *remote.Outbox
		speech   *remote.Speech
		sound    *remote.Sound
		lastSeen atomic.Int64
	}
)

func NewCountingGameUsecase(c CountingGameConfig) CountingGameUsecase {
	if c.Settings.OutboxCapacity <= 0 {
		c.Settings.OutboxCapacity = remote.DefaultCapacity
	}
	if c.Settings.SilentDelay <= 0 {
		c.Settings.SilentDelay = speech.DefaultSilentDelay
	}
	if len(c.Settings.Profiles) == 0 {
		c.Settings.Profiles = round.DefaultProfiles()
	}
	return &countingGameUsecase{
		settings: c.Settings,
		log:      c.Log,
		rand:     c.Rand,
		games:    map[string]*liveGame{},
	}
}

func (u *countingGameUsecase) Difficulties(ctx context.Context) []entity.DifficultyResponse {
	return mapper.ConvertToDifficultyResponses(u.settings.Profiles)
}

func (u *countingGameUsecase) Create(ctx context.Context, req entity.CreateGameRequest) (*entity.GameResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := game.ModeAI
	if req.Mode != "" {
		m, err := game.ParseMode(req.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	lg := &liveGame{
		id:     uuid.NewString(),
		loop:   eventloop.New(),
		outbox: remote.NewOutbox(u.settings.OutboxCapacity),
	}
	log := u.log.WithFields(logrus.Fields{"component": "game", "game_id": lg.id})

	var backend speech.Backend
	if req.Speech {
		lg.speech = remote.NewSpeech(lg.outbox)
		backend = lg.speech
	} else {
		backend = speech.NewSilent(lg.loop, u.settings.SilentDelay)
	}

	var sound game.SoundPlayer = game.Mute{}
	if req.Sound {
		lg.sound = remote.NewSound(lg.outbox)
		sound = lg.sound
	}

	var rnd round.Rand
	if u.rand != nil {
		rnd = u.rand()
	}

	var res *entity.GameResponse
	err := lg.loop.Do(func() {
		seq := speech.NewSequencer(lg.loop, backend, log, u.settings.Speech)
		seq.UpdateVoices(req.Voices)
		lg.game = game.New(game.Config{
			Scheduler: lg.loop,
			Speech:    seq,
			Sound:     sound,
			View:      lg.outbox,
			Generator: round.NewGenerator(rnd, u.settings.Themes),
			Profiles:  u.settings.Profiles,
			Rules:     u.settings.Rules,
			Log:       log,
		})
		lg.game.SelectMode(mode)
		res = lg.response()
	})
	if err != nil {
		return nil, err
	}

	lg.touch(time.Now())
	u.mu.Lock()
	u.games[lg.id] = lg
	u.mu.Unlock()

	log.WithFields(logrus.Fields{"mode": mode, "speech": res.SpeechBackend, "sound": req.Sound}).Info("game created")
	return res, nil
}

func (u *countingGameUsecase) Get(ctx context.Context, id string) (*entity.GameResponse, error) {
	var res *entity.GameResponse
	err := u.run(ctx, id, func(lg *liveGame) {
		res = lg.response()
	})
	return res, err
}

func (u *countingGameUsecase) Leave(ctx context.Context, id string) error {
	lg, err := u.find(id)
	if err != nil {
		return err
	}
	u.remove(lg)
	return nil
}

func (u *countingGameUsecase) SelectMode(ctx context.Context, id string, mode game.Mode) (*entity.ActionResponse, error) {
	return u.act(ctx, id, func(g *game.Game) (bool, error) {
		return g.SelectMode(mode), nil
	})
}

func (u *countingGameUsecase) SelectDifficulty(ctx context.Context, id, difficulty string) (*entity.ActionResponse, error) {
	return u.act(ctx, id, func(g *game.Game) (bool, error) {
		return g.SelectDifficulty(difficulty)
	})
}

func (u *countingGameUsecase) SubmitAnswer(ctx context.Context, id string, value int) (*entity.ActionResponse, error) {
	return u.act(ctx, id, func(g *game.Game) (bool, error) {
		return g.SubmitAnswer(value), nil
	})
}

func (u *countingGameUsecase) TapItem(ctx context.Context, id string, index int) (*entity.ActionResponse, error) {
	return u.act(ctx, id, func(g *game.Game) (bool, error) {
		return g.TapItem(index), nil
	})
}

func (u *countingGameUsecase) HoverOption(ctx context.Context, id string, value int) (*entity.ActionResponse, error) {
	return u.act(ctx, id, func(g *game.Game) (bool, error) {
		return g.HoverOption(value), nil
	})
}

func (u *countingGameUsecase) PlayAgain(ctx context.Context, id string) (*entity.ActionResponse, error) {
	return u.act(ctx, id, func(g *game.Game) (bool, error) {
		return g.PlayAgain(), nil
	})
}

func (u *countingGameUsecase) UpdateVoices(ctx context.Context, id string, voices []speech.Voice) (*entity.ActionResponse, error) {
	return u.act(ctx, id, func(g *game.Game) (bool, error) {
		g.UpdateVoices(voices)
		return true, nil
	})
}

func (u *countingGameUsecase) Commands(ctx context.Context, id string, after uint64) (*entity.CommandsResponse, error) {
	var res *entity.CommandsResponse
	err := u.run(ctx, id, func(lg *liveGame) {
		res = &entity.CommandsResponse{
			Commands:  lg.outbox.Since(after),
			OldestSeq: lg.outbox.Oldest(),
			LastSeq:   lg.outbox.Last(),
			Truncated: lg.outbox.Truncated(after),
		}
	})
	return res, err
}

func (u *countingGameUsecase) ReportSpeech(ctx context.Context, id, utteranceID string, req entity.PlaybackEventRequest) error {
	var reportErr error
	err := u.run(ctx, id, func(lg *liveGame) {
		if lg.speech == nil {
			reportErr = remote.ErrUnknownPlayback
			return
		}
		reportErr = lg.speech.Report(utteranceID, remote.Event(req.Event), req.Error)
	})
	if err != nil {
		return err
	}
	return reportErr
}

func (u *countingGameUsecase) ReportSound(ctx context.Context, id, playID string, req entity.PlaybackEventRequest) error {
	var reportErr error
	err := u.run(ctx, id, func(lg *liveGame) {
		if lg.sound == nil {
			reportErr = remote.ErrUnknownPlayback
			return
		}
		reportErr = lg.sound.Report(playID, remote.Event(req.Event), req.Error)
	})
	if err != nil {
		return err
	}
	return reportErr
}

// EvictIdle closes games with no request since now minus the idle TTL.
func (u *countingGameUsecase) EvictIdle(now time.Time) int {
	if u.settings.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-u.settings.IdleTTL).UnixNano()

	u.mu.Lock()
	var idle []*liveGame
	for _, lg := range u.games {
		if lg.lastSeen.Load() < cutoff {
			idle = append(idle, lg)
		}
	}
	u.mu.Unlock()

	for _, lg := range idle {
		u.remove(lg)
	}
	if len(idle) > 0 {
		u.log.WithField("count", len(idle)).Info("evicted idle games")
	}
	return len(idle)
}

func (u *countingGameUsecase) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			u.EvictIdle(now)
		}
	}
}

// Shutdown closes every game.
func (u *countingGameUsecase) Shutdown() {
	u.mu.Lock()
	all := make([]*liveGame, 0, len(u.games))
	for _, lg := range u.games {
		all = append(all, lg)
	}
	u.mu.Unlock()

	for _, lg := range all {
		u.remove(lg)
	}
}

func (u *countingGameUsecase) find(id string) (*liveGame, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	lg, ok := u.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return lg, nil
}

func (u *countingGameUsecase) remove(lg *liveGame) {
	u.mu.Lock()
	if u.games[lg.id] != lg {
		u.mu.Unlock()
		return
	}
	delete(u.games, lg.id)
	u.mu.Unlock()

	_ = lg.loop.Do(func() { lg.game.Leave() })
	lg.loop.Close()
}

// run executes fn on the game's loop.
func (u *countingGameUsecase) run(ctx context.Context, id string, fn func(lg *liveGame)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lg, err := u.find(id)
	if err != nil {
		return err
	}
	lg.touch(time.Now())

	if err := lg.loop.Do(func() { fn(lg) }); err != nil {
		if errors.Is(err, eventloop.ErrClosed) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}

func (u *countingGameUsecase) act(ctx context.Context, id string, op func(g *game.Game) (bool, error)) (*entity.ActionResponse, error) {
	var (
		res   *entity.ActionResponse
		opErr error
	)
	err := u.run(ctx, id, func(lg *liveGame) {
		var accepted bool
		accepted, opErr = op(lg.game)
		if opErr != nil {
			return
		}
		res = &entity.ActionResponse{Accepted: accepted, Game: *lg.response()}
	})
	if err != nil {
		return nil, err
	}
	return res, opErr
}

func (lg *liveGame) touch(now time.Time) {
	lg.lastSeen.Store(now.UnixNano())
}

func (lg *liveGame) response() *entity.GameResponse {
	backend := SpeechBackendSilent
	if lg.speech != nil {
		backend = SpeechBackendClient
	}
	return &entity.GameResponse{
		ID:            lg.id,
		Snapshot:      lg.game.Snapshot(),
		SpeechBackend: backend,
		LastSeq:       lg.outbox.Last(),
	}
}
