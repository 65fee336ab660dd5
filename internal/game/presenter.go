package game

// Overlay is a full-screen panel on top of the board.
type Overlay string

const (
	OverlayNone    Overlay = "none"
	OverlayStart   Overlay = "start"
	OverlaySummary Overlay = "summary"
)

type OptionMark string

const (
	MarkCorrect OptionMark = "correct"
	MarkWrong   OptionMark = "wrong"
)

type Celebration string

const (
	CelebrateAnswer  Celebration = "answer"
	CelebrateSession Celebration = "session"
)

// Clip identifies a sound effect.
type Clip string

const (
	ClipCorrect Clip = "correct"
	ClipError   Clip = "error"
	ClipSuccess Clip = "success"
)

// Presenter renders game state. Calls are fire-and-forget.
type Presenter interface {
	ShowOverlay(o Overlay)
	// StartTurn clears the board, the options and the feedback line.
	StartTurn(number, total int)
	RenderItems(icon string, count int, counting bool)
	MarkItemChecked(index int)
	RenderOptions(values []int)
	DisableOptions()
	MarkOption(value int, mark OptionMark)
	ShowFeedback(text string, correct bool)
	UpdateScore(score int)
	Celebrate(c Celebration)
	ShowSummary(s Summary)
}

// SoundPlayer plays a clip and calls done when it has finished or failed.
// done may be called from any goroutine.
type SoundPlayer interface {
	Play(clip Clip, done func(err error))
}

// SoundCanceller is implemented by players that hold on to done callbacks.
// The game cancels them whenever it abandons a turn.
type SoundCanceller interface {
	Cancel()
}

// Mute is the SoundPlayer for clients without audio: it completes at once.
type Mute struct{}

func (Mute) Play(_ Clip, done func(err error)) {
	done(nil)
}
