package remote

import (
	"errors"
	"fmt"

	"github.com/dd13556li/count/internal/game/speech"
)

type Event string

const (
	EventStart    Event = "start"
	EventEnd      Event = "end"
	EventError    Event = "error"
	EventEnded    Event = "ended"
	EventRejected Event = "rejected"
)

var (
	ErrUnknownPlayback  = errors.New("unknown or finished playback")
	ErrUnsupportedEvent = errors.New("unsupported playback event")
)

// Speech is a speech.Backend whose synthesizer lives in the client.
type Speech struct {
	out     *Outbox
	pending map[string]speech.Events
}

func NewSpeech(out *Outbox) *Speech {
	return &Speech{out: out, pending: map[string]speech.Events{}}
}

func (s *Speech) Speak(u speech.Utterance, ev speech.Events) {
	s.pending[u.ID] = ev
	s.out.push(CommandSpeechSpeak, Payload{
		"id":    u.ID,
		"text":  u.Text,
		"voice": u.Voice,
		"lang":  u.Lang,
		"rate":  u.Rate,
	})
}

func (s *Speech) Cancel() {
	s.pending = map[string]speech.Events{}
	s.out.push(CommandSpeechCancel, nil)
}

// Report delivers a client event for utterance id.
func (s *Speech) Report(id string, event Event, message string) error {
	ev, ok := s.pending[id]
	if !ok {
		return ErrUnknownPlayback
	}

	switch event {
	case EventStart:
		ev.Start()
	case EventEnd:
		delete(s.pending, id)
		ev.End()
	case EventError:
		delete(s.pending, id)
		if message == "" {
			message = "speech error"
		}
		ev.Error(errors.New(message))
	default:
		return fmt.Errorf("%w %q for speech", ErrUnsupportedEvent, event)
	}
	return nil
}
