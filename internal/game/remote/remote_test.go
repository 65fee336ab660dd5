package remote

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dd13556li/count/internal/game"
	"github.com/dd13556li/count/internal/game/eventloop"
	"github.com/dd13556li/count/internal/game/speech"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func types(cmds []Command) []string {
	out := []string{}
	for _, c := range cmds {
		out = append(out, c.Type)
	}
	return out
}

func TestOutboxSinceAndCapacity(t *testing.T) {
	o := NewOutbox(3)
	o.StartTurn(1, 10)
	o.RenderItems("🍎", 4, false)
	o.MarkItemChecked(0)
	o.MarkItemChecked(1)

	all := o.Since(0)
	if diff := cmp.Diff([]string{CommandItemsRender, CommandItemCheck, CommandItemCheck}, types(all)); diff != "" {
		t.Errorf("retained (-want +got):\n%s", diff)
	}
	if all[0].Seq != 2 || o.Last() != 4 {
		t.Errorf("seq = %d, last = %d", all[0].Seq, o.Last())
	}

	tail := o.Since(3)
	if len(tail) != 1 || tail[0].Data["index"] != 1 {
		t.Errorf("Since(3) = %+v", tail)
	}
	if got := o.Since(4); len(got) != 0 {
		t.Errorf("Since(last) = %+v", got)
	}
}

func TestOutboxTruncated(t *testing.T) {
	o := NewOutbox(3)
	if o.Oldest() != 1 || o.Truncated(0) {
		t.Fatalf("empty outbox: oldest = %d, truncated = %v", o.Oldest(), o.Truncated(0))
	}
	for i := 0; i < 5; i++ {
		o.MarkItemChecked(i)
	}

	if o.Oldest() != 3 {
		t.Errorf("oldest = %d, want 3", o.Oldest())
	}
	for after, want := range map[uint64]bool{0: true, 1: true, 2: false, 4: false, 5: false} {
		if got := o.Truncated(after); got != want {
			t.Errorf("Truncated(%d) = %v, want %v", after, got, want)
		}
	}
}

func TestSpeechBackendRoundTrip(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := eventloop.NewManual()
	out := NewOutbox(0)
	backend := NewSpeech(out)
	seq := speech.NewSequencer(m, backend, log, speech.Options{Gap: speech.DefaultGap})

	var events []string
	seq.Enqueue(speech.Request{
		Text:    "一",
		OnStart: func() { events = append(events, "start") },
		OnEnd:   func() { events = append(events, "end") },
	})
	seq.Say("二", func() { events = append(events, "end 二") })

	cmds := out.Since(0)
	if len(cmds) != 1 || cmds[0].Type != CommandSpeechSpeak || cmds[0].Data["text"] != "一" {
		t.Fatalf("commands = %+v", cmds)
	}
	id := cmds[0].Data["id"].(string)

	if err := backend.Report(id, EventStart, ""); err != nil {
		t.Fatal(err)
	}
	if err := backend.Report(id, EventEnd, ""); err != nil {
		t.Fatal(err)
	}
	if err := backend.Report(id, EventEnd, ""); !errors.Is(err, ErrUnknownPlayback) {
		t.Errorf("second end err = %v", err)
	}
	m.Advance(speech.DefaultGap)

	cmds = out.Since(cmds[0].Seq)
	if len(cmds) != 1 || cmds[0].Data["text"] != "二" {
		t.Fatalf("second utterance not requested: %+v", cmds)
	}
	if err := backend.Report(cmds[0].Data["id"].(string), EventError, "synthesis-failed"); err != nil {
		t.Fatal(err)
	}
	m.Flush()

	if diff := cmp.Diff([]string{"start", "end", "end 二"}, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestSpeechBackendCancelForgetsPending(t *testing.T) {
	out := NewOutbox(0)
	backend := NewSpeech(out)
	backend.Speak(speech.Utterance{ID: "7", Text: "x"}, speech.Events{
		Start: func() { t.Error("start after cancel") },
		End:   func() { t.Error("end after cancel") },
		Error: func(error) { t.Error("error after cancel") },
	})
	backend.Cancel()

	if err := backend.Report("7", EventEnd, ""); !errors.Is(err, ErrUnknownPlayback) {
		t.Errorf("err = %v", err)
	}
	if diff := cmp.Diff([]string{CommandSpeechSpeak, CommandSpeechCancel}, types(out.Since(0))); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}
}

func TestSoundReport(t *testing.T) {
	out := NewOutbox(0)
	s := NewSound(out)

	var results []error
	s.Play(game.ClipCorrect, func(err error) { results = append(results, err) })
	s.Play(game.ClipError, func(err error) { results = append(results, err) })

	cmds := out.Since(0)
	if len(cmds) != 2 || cmds[0].Data["clip"] != game.ClipCorrect {
		t.Fatalf("commands = %+v", cmds)
	}
	if err := s.Report(cmds[0].Data["id"].(string), EventEnded, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Report(cmds[1].Data["id"].(string), EventRejected, "NotAllowedError"); err != nil {
		t.Fatal(err)
	}
	if err := s.Report("missing", EventEnded, ""); !errors.Is(err, ErrUnknownPlayback) {
		t.Errorf("err = %v", err)
	}

	if len(results) != 2 || results[0] != nil || results[1] == nil || results[1].Error() != "NotAllowedError" {
		t.Errorf("results = %v", results)
	}
}

func TestSoundCancelForgetsPending(t *testing.T) {
	out := NewOutbox(0)
	s := NewSound(out)
	s.Play(game.ClipCorrect, func(error) { t.Error("done called after cancel") })
	id := out.Since(0)[0].Data["id"].(string)

	s.Cancel()
	if err := s.Report(id, EventEnded, ""); !errors.Is(err, ErrUnknownPlayback) {
		t.Errorf("err = %v", err)
	}
}

func TestReportRejectsWrongEventKind(t *testing.T) {
	out := NewOutbox(0)
	sound := NewSound(out)
	sound.Play(game.ClipSuccess, func(error) { t.Error("done called") })
	id := out.Since(0)[0].Data["id"].(string)

	if err := sound.Report(id, EventEnd, ""); !errors.Is(err, ErrUnsupportedEvent) {
		t.Fatalf("err = %v, want ErrUnsupportedEvent", err)
	}
	// the clip is still pending
	if err := sound.Report(id, "bogus", ""); !errors.Is(err, ErrUnsupportedEvent) {
		t.Fatalf("err = %v, want ErrUnsupportedEvent", err)
	}
}

func TestOutboxDrivesWholeTurn(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := eventloop.NewManual()
	out := NewOutbox(0)
	seq := speech.NewSequencer(m, speech.NewSilent(m, 0), log, speech.Options{Gap: speech.DefaultGap})
	g := game.New(game.Config{Scheduler: m, Speech: seq, View: out, Log: log})

	if _, err := g.SelectDifficulty("easy"); err != nil {
		t.Fatal(err)
	}
	m.Advance(time.Minute)

	got := types(out.Since(0))
	if got[0] != CommandOverlayShow || got[len(got)-1] != CommandOptionsRender {
		t.Errorf("commands = %v", got)
	}
	checks := 0
	for _, c := range got {
		if c == CommandItemCheck {
			checks++
		}
	}
	if checks != g.Snapshot().Current.ItemCount {
		t.Errorf("%d item checks for %d items", checks, g.Snapshot().Current.ItemCount)
	}
}
