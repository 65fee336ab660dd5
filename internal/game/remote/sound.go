package remote

import (
	"errors"
	"fmt"

	"github.com/dd13556li/count/internal/game"
	"github.com/google/uuid"
)

// Sound is a game.SoundPlayer whose audio element lives in the client.
type Sound struct {
	out     *Outbox
	pending map[string]func(error)
}

func NewSound(out *Outbox) *Sound {
	return &Sound{out: out, pending: map[string]func(error){}}
}

func (s *Sound) Play(clip game.Clip, done func(err error)) {
	id := uuid.NewString()
	s.pending[id] = done
	s.out.push(CommandSoundPlay, Payload{"id": id, "clip": clip})
}

// Cancel forgets every playback still waiting for a report.
func (s *Sound) Cancel() {
	s.pending = map[string]func(error){}
}

// Report resolves play id with ended or rejected.
func (s *Sound) Report(id string, event Event, message string) error {
	done, ok := s.pending[id]
	if !ok {
		return ErrUnknownPlayback
	}

	switch event {
	case EventEnded:
		delete(s.pending, id)
		done(nil)
	case EventRejected:
		delete(s.pending, id)
		if message == "" {
			message = "playback rejected"
		}
		done(errors.New(message))
	default:
		return fmt.Errorf("%w %q for sound", ErrUnsupportedEvent, event)
	}
	return nil
}
