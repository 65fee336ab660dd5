package speech

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dd13556li/count/internal/game/eventloop"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

type spoken struct {
	u  Utterance
	ev Events
}

// fakeBackend hands control of every utterance's lifecycle to the test.
type fakeBackend struct {
	spoken  []spoken
	cancels int
	live    int
	maxLive int
}

func (f *fakeBackend) Speak(u Utterance, ev Events) {
	f.live++
	if f.live > f.maxLive {
		f.maxLive = f.live
	}
	f.spoken = append(f.spoken, spoken{u: u, ev: ev})
}

func (f *fakeBackend) Cancel() {
	f.cancels++
	f.live = 0
}

// play starts and ends the most recent utterance.
func (f *fakeBackend) play(m *eventloop.Manual) {
	last := f.spoken[len(f.spoken)-1]
	last.ev.Start()
	m.Flush()
	f.live--
	last.ev.End()
	m.Advance(DefaultGap)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestSequencer(b Backend, m *eventloop.Manual) *Sequencer {
	return NewSequencer(m, b, quietLogger(), Options{Gap: DefaultGap})
}

func TestSequencerSpeaksOneAtATimeInOrder(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	var events []string
	for _, text := range []string{"1", "2", "3"} {
		text := text
		s.Enqueue(Request{
			Text:    text,
			OnStart: func() { events = append(events, "start "+text) },
			OnEnd:   func() { events = append(events, "end "+text) },
		})
	}

	if len(b.spoken) != 1 {
		t.Fatalf("spoken = %d before first end, want 1", len(b.spoken))
	}
	for i := 0; i < 3; i++ {
		b.play(m)
	}

	want := []string{"start 1", "end 1", "start 2", "end 2", "start 3", "end 3"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if b.maxLive != 1 {
		t.Errorf("max utterances in flight = %d, want 1", b.maxLive)
	}
	if s.Busy() || s.Pending() != 0 {
		t.Errorf("busy=%v pending=%d after draining", s.Busy(), s.Pending())
	}
}

func TestSequencerUtteranceCarriesVoiceAndRate(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)
	s.UpdateVoices([]Voice{
		{Name: "English", Lang: "en-US"},
		{Name: "Google 國語（臺灣）", Lang: "zh-TW"},
	})

	s.Say("你好", nil)

	got := b.spoken[0].u
	want := Utterance{ID: "1", Text: "你好", Voice: "Google 國語（臺灣）", Lang: "zh-TW", Rate: 1.2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("utterance (-want +got):\n%s", diff)
	}
}

func TestSequencerBarrierWaitsForPriorSpeech(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	var events []string
	s.Say("a", func() { events = append(events, "a") })
	s.Enqueue(Request{
		OnStart: func() { events = append(events, "barrier start") },
		OnEnd:   func() { events = append(events, "barrier end") },
	})
	if len(events) != 0 {
		t.Fatalf("barrier fired early: %v", events)
	}

	b.play(m)
	want := []string{"a", "barrier start", "barrier end"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestSequencerBarrierOnIdleQueueFiresImmediately(t *testing.T) {
	m := eventloop.NewManual()
	s := newTestSequencer(&fakeBackend{}, m)

	fired := false
	s.Enqueue(Request{OnEnd: func() { fired = true }})
	if !fired {
		t.Error("barrier on an idle queue should fire synchronously")
	}
}

func TestSequencerCancelAllStartsNextWithoutWaiting(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	var ended []string
	s.Say("old-1", func() { ended = append(ended, "old-1") })
	s.Say("old-2", func() { ended = append(ended, "old-2") })

	s.CancelAll()
	if b.cancels != 1 {
		t.Errorf("backend cancels = %d, want 1", b.cancels)
	}
	s.Say("new", func() { ended = append(ended, "new") })

	if len(b.spoken) != 2 || b.spoken[1].u.Text != "new" {
		t.Fatalf("new request did not start immediately: %+v", b.spoken)
	}

	// A late end for the cancelled utterance must not fire its callback
	// nor release the new one.
	b.spoken[0].ev.End()
	m.Flush()
	if len(ended) != 0 {
		t.Errorf("stale end fired callbacks: %v", ended)
	}
	if !s.Busy() {
		t.Error("stale end released the in-flight slot")
	}

	b.play(m)
	if diff := cmp.Diff([]string{"new"}, ended); diff != "" {
		t.Errorf("ended (-want +got):\n%s", diff)
	}
}

func TestSequencerCancelWhenIdleDoesNotTouchBackend(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	s.CancelAll()
	if b.cancels != 0 {
		t.Errorf("cancels = %d, want 0", b.cancels)
	}
}

func TestSequencerErrorCountsAsCompletion(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	var ended []string
	s.Say("broken", func() { ended = append(ended, "broken") })
	s.Say("next", func() { ended = append(ended, "next") })

	b.spoken[0].ev.Error(errors.New("synthesis-failed"))
	// Some engines report end after error as well.
	b.spoken[0].ev.End()
	m.Advance(DefaultGap)

	if len(b.spoken) != 2 {
		t.Fatalf("queue stalled after error: spoken=%d", len(b.spoken))
	}
	b.play(m)

	if diff := cmp.Diff([]string{"broken", "next"}, ended); diff != "" {
		t.Errorf("ended (-want +got):\n%s", diff)
	}
}

func TestSequencerErrorBeforeStartStillFiresOnStart(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	var events []string
	s.Enqueue(Request{
		Text:    "1",
		OnStart: func() { events = append(events, "start 1") },
		OnEnd:   func() { events = append(events, "end 1") },
	})
	s.Enqueue(Request{
		Text:    "2",
		OnStart: func() { events = append(events, "start 2") },
		OnEnd:   func() { events = append(events, "end 2") },
	})

	b.spoken[0].ev.Error(errors.New("not-allowed"))
	m.Advance(DefaultGap)
	b.spoken[1].ev.Start()
	b.spoken[1].ev.Error(errors.New("interrupted"))
	m.Flush()

	want := []string{"start 1", "end 1", "start 2", "end 2"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestSequencerStartFiresOnce(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	starts := 0
	s.Enqueue(Request{Text: "x", OnStart: func() { starts++ }})
	b.spoken[0].ev.Start()
	b.spoken[0].ev.Start()
	m.Flush()

	if starts != 1 {
		t.Errorf("starts = %d, want 1", starts)
	}
}

func TestSequencerCallbackCanCancelAndEnqueue(t *testing.T) {
	m := eventloop.NewManual()
	b := &fakeBackend{}
	s := newTestSequencer(b, m)

	s.Say("first", func() {
		s.CancelAll()
		s.Say("replacement", nil)
	})
	s.Say("dropped", nil)

	b.play(m)
	var texts []string
	for _, sp := range b.spoken {
		texts = append(texts, sp.u.Text)
	}
	if diff := cmp.Diff([]string{"first", "replacement"}, texts); diff != "" {
		t.Errorf("spoken (-want +got):\n%s", diff)
	}
	if !s.Busy() {
		t.Error("replacement should be in flight")
	}
}

func TestSilentBackendCompletesAfterDelay(t *testing.T) {
	m := eventloop.NewManual()
	s := NewSequencer(m, NewSilent(m, 0), quietLogger(), Options{Gap: DefaultGap})

	var events []string
	for _, text := range []string{"一", "二"} {
		text := text
		s.Enqueue(Request{
			Text:    text,
			OnStart: func() { events = append(events, "start "+text) },
			OnEnd:   func() { events = append(events, "end "+text) },
		})
	}

	m.Advance(DefaultSilentDelay - time.Millisecond)
	if len(events) != 0 {
		t.Fatalf("silent backend completed early: %v", events)
	}
	m.Advance(time.Millisecond)
	if diff := cmp.Diff([]string{"start 一", "end 一"}, events); diff != "" {
		t.Fatalf("after one delay (-want +got):\n%s", diff)
	}

	m.Advance(DefaultGap + DefaultSilentDelay)
	want := []string{"start 一", "end 一", "start 二", "end 二"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestSilentBackendCancel(t *testing.T) {
	m := eventloop.NewManual()
	s := NewSequencer(m, NewSilent(m, 0), quietLogger(), Options{})

	ended := false
	s.Say("x", func() { ended = true })
	s.CancelAll()
	m.Advance(time.Second)

	if ended {
		t.Error("cancelled silent utterance still completed")
	}
}
