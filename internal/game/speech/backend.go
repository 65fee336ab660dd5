package speech

import (
	"time"

	"github.com/dd13556li/count/internal/game/eventloop"
)

// Utterance is what the sequencer hands to a backend.
type Utterance struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Voice string  `json:"voice,omitempty"`
	Lang  string  `json:"lang"`
	Rate  float64 `json:"rate"`
}

// Events are the lifecycle notifications a backend reports for one utterance.
// They may be called from any goroutine; the sequencer re-posts them to its scheduler.
type Events struct {
	Start func()
	End   func()
	Error func(err error)
}

// Backend is a text-to-speech engine. Only the Sequencer talks to it.
type Backend interface {
	Speak(u Utterance, ev Events)
	// Cancel aborts the utterance in flight, if any.
	Cancel()
}

// Silent stands in for a missing speech synthesizer: every utterance
// "plays" for a fixed delay and then completes.
type Silent struct {
	sched   eventloop.Scheduler
	delay   time.Duration
	pending eventloop.Timer
}

const DefaultSilentDelay = 600 * time.Millisecond

func NewSilent(sched eventloop.Scheduler, delay time.Duration) *Silent {
	if delay <= 0 {
		delay = DefaultSilentDelay
	}
	return &Silent{sched: sched, delay: delay}
}

func (s *Silent) Speak(_ Utterance, ev Events) {
	s.pending = s.sched.After(s.delay, func() {
		s.pending = nil
		ev.Start()
		ev.End()
	})
}

func (s *Silent) Cancel() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
