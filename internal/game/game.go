// Package game is the counting game engine: a session of turns in which
// items are counted aloud (by the narrator or by the child tapping them) and
// the child then picks the total from a few choices.
//
// A Game is not safe for concurrent use. All of its methods, and all speech
// and sound callbacks, must run on the goroutine behind its Scheduler.
package game

import (
	"errors"
	"fmt"

	"github.com/dd13556li/count/internal/game/eventloop"
	"github.com/dd13556li/count/internal/game/round"
	"github.com/dd13556li/count/internal/game/speech"
	"github.com/sirupsen/logrus"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type Mode string

const (
	// ModeAI lets the narrator count the items.
	ModeAI Mode = "ai"
	// ModeUser lets the child count by tapping each item.
	ModeUser Mode = "user"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAI, ModeUser:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhasePlaying   Phase = "playing"
	PhaseSummary   Phase = "summary"
	PhaseClosed    Phase = "closed"
)

// Config wires a Game. Sound defaults to Mute; the generator, profiles,
// rules and logger have defaults too.
type Config struct {
	Scheduler eventloop.Scheduler
	Speech    *speech.Sequencer
	Sound     SoundPlayer
	View      Presenter
	Generator *round.Generator
	Profiles  map[string]round.Profile
	Rules     Rules
	Log       logrus.FieldLogger
}

type Game struct {
	env      env
	gen      *round.Generator
	profiles map[string]round.Profile
	rules    Rules

	phase   Phase
	mode    Mode
	session *Session
	turn    *Turn
	next    eventloop.Timer
}

func New(cfg Config) *Game {
	if cfg.Sound == nil {
		cfg.Sound = Mute{}
	}
	if cfg.Generator == nil {
		cfg.Generator = round.NewGenerator(nil, nil)
	}
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = round.DefaultProfiles()
	}
	if cfg.Rules.TotalTurns == 0 {
		cfg.Rules = DefaultRules()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}

	g := &Game{
		env: env{
			sched:  cfg.Scheduler,
			speech: cfg.Speech,
			sound:  cfg.Sound,
			view:   cfg.View,
			log:    cfg.Log,
		},
		gen:      cfg.Generator,
		profiles: cfg.Profiles,
		rules:    cfg.Rules,
		phase:    PhaseSelecting,
		mode:     ModeAI,
		session:  NewSession(cfg.Rules),
	}
	g.env.view.ShowOverlay(OverlayStart)
	return g
}

// SelectMode chooses who counts. It is only honoured on the start screen.
func (g *Game) SelectMode(m Mode) bool {
	if g.phase != PhaseSelecting {
		return false
	}
	g.env.speech.CancelAll()
	g.mode = m
	return true
}

// SelectDifficulty starts a new round of turns, abandoning any turn in progress.
func (g *Game) SelectDifficulty(key string) (bool, error) {
	if g.phase == PhaseClosed {
		return false, nil
	}
	p, ok := g.profiles[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownDifficulty, key)
	}

	g.env.speech.CancelAll()
	g.stop()
	g.session.Start(p)
	g.phase = PhasePlaying
	g.env.log.WithFields(logrus.Fields{"difficulty": key, "mode": g.mode}).Info("round started")

	g.env.view.ShowOverlay(OverlayNone)
	g.env.view.UpdateScore(0)
	g.startTurn()
	return true, nil
}

func (g *Game) SubmitAnswer(value int) bool {
	if g.phase != PhasePlaying || g.turn == nil {
		return false
	}
	return g.turn.SubmitAnswer(value)
}

func (g *Game) TapItem(index int) bool {
	if g.phase != PhasePlaying || g.turn == nil {
		return false
	}
	return g.turn.TapItem(index)
}

func (g *Game) HoverOption(value int) bool {
	if g.phase != PhasePlaying || g.turn == nil {
		return false
	}
	return g.turn.HoverOption(value)
}

// PlayAgain returns from the summary to the start screen.
func (g *Game) PlayAgain() bool {
	if g.phase != PhaseSummary {
		return false
	}
	g.phase = PhaseSelecting
	g.turn = nil
	g.env.view.ShowOverlay(OverlayStart)
	return true
}

// UpdateVoices handles a change in the client's available voices.
func (g *Game) UpdateVoices(voices []speech.Voice) {
	g.env.speech.UpdateVoices(voices)
}

// Leave shuts the game down when the player navigates away.
func (g *Game) Leave() {
	if g.phase == PhaseClosed {
		return
	}
	g.env.speech.CancelAll()
	g.stop()
	g.phase = PhaseClosed
	g.env.log.Info("game closed")
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Mode() Mode {
	return g.mode
}

func (g *Game) Session() *Session {
	return g.session
}

// Turn is the turn in progress, or nil.
func (g *Game) Turn() *Turn {
	return g.turn
}

func (g *Game) startTurn() {
	r := g.gen.Generate(g.session.Profile())
	number := g.session.TurnIndex() + 1
	g.env.view.StartTurn(number, g.session.TotalTurns())

	var t *Turn
	t = newTurn(&g.env, number, g.mode, r, turnHooks{
		resolved: g.turnResolved,
		done:     func() { g.turnDone(t) },
	})
	g.turn = t
	t.start()
}

func (g *Game) turnResolved(correct bool) {
	g.session.RecordTurn(correct)
	g.env.view.UpdateScore(g.session.Score())
}

func (g *Game) turnDone(t *Turn) {
	if g.phase != PhasePlaying || g.turn != t {
		return
	}
	if g.session.Complete() {
		g.finishSession()
		return
	}

	g.next = g.env.sched.After(g.rules.NextTurnDelay, func() {
		g.next = nil
		if g.phase == PhasePlaying && g.turn == t {
			g.startTurn()
		}
	})
}

func (g *Game) finishSession() {
	g.phase = PhaseSummary
	s := g.session.Summary()
	g.env.log.WithFields(logrus.Fields{"score": s.Score, "tier": s.Tier}).Info("session complete")

	g.env.view.ShowSummary(s)
	g.env.view.Celebrate(CelebrateSession)
	log := g.env.log
	g.env.sound.Play(ClipSuccess, func(err error) {
		if err != nil {
			log.WithError(err).Warn("success sound failed")
		}
	})
	g.env.speech.Say(s.Message, nil)
}

// stop abandons the current turn and any pending turn timer.
func (g *Game) stop() {
	if g.next != nil {
		g.next.Stop()
		g.next = nil
	}
	if g.turn != nil {
		g.turn.abandon()
		g.turn = nil
	}
	if c, ok := g.env.sound.(SoundCanceller); ok {
		c.Cancel()
	}
}

// Snapshot is the state a client needs to redraw the game.
type Snapshot struct {
	Phase      Phase     `json:"phase"`
	Mode       Mode      `json:"mode"`
	Difficulty string    `json:"difficulty,omitempty"`
	Score      int       `json:"score"`
	Turn       int       `json:"turn"`
	TotalTurns int       `json:"total_turns"`
	Speaking   bool      `json:"speaking"`
	Voice      string    `json:"voice,omitempty"`
	Current    *TurnView `json:"current,omitempty"`
	Summary    *Summary  `json:"summary,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      g.phase,
		Mode:       g.mode,
		Difficulty: g.session.Profile().Key,
		Score:      g.session.Score(),
		Turn:       g.session.TurnIndex(),
		TotalTurns: g.session.TotalTurns(),
		Speaking:   g.env.speech.Busy(),
		Voice:      g.env.speech.Voice(),
	}
	if g.turn != nil {
		v := g.turn.snapshot()
		s.Current = &v
		s.Turn = v.Number
	}
	if g.phase == PhaseSummary {
		sum := g.session.Summary()
		s.Summary = &sum
	}
	return s
}
