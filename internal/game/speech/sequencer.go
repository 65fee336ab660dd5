// Package speech serializes spoken prompts over an asynchronous TTS backend.
package speech

import (
	"strconv"
	"time"

	"github.com/dd13556li/count/internal/game/eventloop"
	"github.com/sirupsen/logrus"
)

// Request pairs optional text with lifecycle callbacks. A request with empty
// text is a barrier: its callbacks fire as soon as it reaches the head of the queue.
type Request struct {
	Text    string
	OnStart func()
	OnEnd   func()
}

type Options struct {
	Lang string
	Rate float64
	// Gap is the pause between the end of one utterance and the start of the next.
	Gap time.Duration
}

const (
	DefaultLang = "zh-TW"
	DefaultRate = 1.2
	DefaultGap  = 50 * time.Millisecond
)

// Sequencer is a FIFO of speech requests with at most one utterance in flight.
// All methods must be called from the scheduler's goroutine.
type Sequencer struct {
	sched   eventloop.Scheduler
	backend Backend
	log     logrus.FieldLogger
	opts    Options
	voice   string

	queue    []Request
	speaking bool
	inFlight bool
	// epoch changes on every dispatch and every cancel; callbacks of an
	// utterance are honoured only while the epoch they captured is current.
	epoch uint64
	ids   uint64
}

func NewSequencer(sched eventloop.Scheduler, backend Backend, log logrus.FieldLogger, opts Options) *Sequencer {
	if opts.Lang == "" {
		opts.Lang = DefaultLang
	}
	if opts.Rate == 0 {
		opts.Rate = DefaultRate
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}
	return &Sequencer{
		sched:   sched,
		backend: backend,
		log:     log.WithField("component", "speech"),
		opts:    opts,
	}
}

func (s *Sequencer) Enqueue(r Request) {
	s.queue = append(s.queue, r)
	s.drain()
}

// Say enqueues text and calls onEnd (which may be nil) once it has been spoken.
func (s *Sequencer) Say(text string, onEnd func()) {
	s.Enqueue(Request{Text: text, OnEnd: onEnd})
}

// CancelAll drops every queued request and aborts the one in flight. The
// aborted request's OnEnd is not called.
func (s *Sequencer) CancelAll() {
	s.queue = nil
	s.epoch++
	if s.inFlight {
		s.backend.Cancel()
	}
	s.inFlight = false
	s.speaking = false
}

// Busy reports whether an utterance is currently in flight.
func (s *Sequencer) Busy() bool {
	return s.speaking
}

// Pending is the number of queued requests not yet started.
func (s *Sequencer) Pending() int {
	return len(s.queue)
}

// UpdateVoices re-selects the voice from a fresh voice list.
func (s *Sequencer) UpdateVoices(voices []Voice) {
	if len(voices) == 0 {
		return
	}
	v, ok := SelectVoice(voices, s.opts.Lang, PreferredVoices)
	if !ok {
		s.log.Warnf("no voice available for %s", s.opts.Lang)
		return
	}
	s.voice = v.Name
	s.log.WithField("voice", v.Name).Info("voice selected")
}

func (s *Sequencer) Voice() string {
	return s.voice
}

func (s *Sequencer) drain() {
	for !s.speaking && len(s.queue) > 0 {
		req := s.queue[0]
		s.queue = s.queue[1:]

		if req.Text == "" {
			s.speaking = true
			epoch := s.epoch
			call(req.OnStart)
			call(req.OnEnd)
			// A callback may have cancelled and started something new.
			if s.epoch == epoch {
				s.speaking = false
			}
			continue
		}

		s.dispatch(req)
	}
}

func (s *Sequencer) dispatch(req Request) {
	s.speaking = true
	s.inFlight = true
	s.epoch++
	s.ids++
	epoch := s.epoch
	u := Utterance{
		ID:    strconv.FormatUint(s.ids, 10),
		Text:  req.Text,
		Voice: s.voice,
		Lang:  s.opts.Lang,
		Rate:  s.opts.Rate,
	}

	var started, finished bool
	finish := func() {
		if finished || s.epoch != epoch {
			return
		}
		finished = true
		call(req.OnEnd)
		if s.epoch != epoch {
			return
		}
		s.inFlight = false
		s.speaking = false
		if s.opts.Gap > 0 {
			s.sched.After(s.opts.Gap, s.drain)
		} else {
			s.sched.Post(s.drain)
		}
	}

	s.backend.Speak(u, Events{
		Start: func() {
			s.sched.Post(func() {
				if started || finished || s.epoch != epoch {
					return
				}
				started = true
				call(req.OnStart)
			})
		},
		End: func() {
			s.sched.Post(finish)
		},
		Error: func(err error) {
			s.sched.Post(func() {
				if s.epoch != epoch || finished {
					return
				}
				s.log.WithError(err).WithField("text", req.Text).Warn("speech synthesis failed")
				// A failed utterance still counts as spoken.
				if !started {
					started = true
					call(req.OnStart)
				}
				finish()
			})
		},
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
