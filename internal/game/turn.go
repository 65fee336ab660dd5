package game

import (
	"fmt"
	"strconv"

	"github.com/dd13556li/count/internal/game/eventloop"
	"github.com/dd13556li/count/internal/game/numeral"
	"github.com/dd13556li/count/internal/game/round"
	"github.com/dd13556li/count/internal/game/speech"
	"github.com/sirupsen/logrus"
)

type TurnState string

const (
	TurnIdle      TurnState = "idle"
	TurnPrompting TurnState = "prompting"
	TurnRevealing TurnState = "revealing"
	TurnCounting  TurnState = "counting"
	TurnOptions   TurnState = "options"
	TurnResolved  TurnState = "resolved"
	TurnDone      TurnState = "done"
	TurnAbandoned TurnState = "abandoned"
)

var turnTransitions = map[TurnState][]TurnState{
	TurnIdle:      {TurnPrompting, TurnAbandoned},
	TurnPrompting: {TurnRevealing, TurnCounting, TurnAbandoned},
	TurnRevealing: {TurnOptions, TurnAbandoned},
	TurnCounting:  {TurnOptions, TurnAbandoned},
	TurnOptions:   {TurnResolved, TurnAbandoned},
	TurnResolved:  {TurnDone, TurnAbandoned},
}

const (
	promptText      = "鼠一鼠有幾個？" // 鼠 so speech engines read shǔ
	optionsCueText  = "請選擇正確的答案！"
	correctText     = "答對了！你真棒！"
	wrongTextFormat = "答錯了，正確答案是 %d。"
)

// env is what a turn needs from its game. Every field is owned by the game's
// scheduler goroutine.
type env struct {
	sched  eventloop.Scheduler
	speech *speech.Sequencer
	sound  SoundPlayer
	view   Presenter
	log    logrus.FieldLogger
}

type turnHooks struct {
	// resolved is called once, when an answer is submitted.
	resolved func(correct bool)
	// done is called once, after the spoken feedback has finished.
	done func()
}

// Turn drives one counting turn from the prompt to the spoken feedback.
// Every continuation re-checks the state, so a late or duplicated callback
// from the speech queue is a no-op.
type Turn struct {
	*env
	hooks  turnHooks
	log    logrus.FieldLogger
	number int
	mode   Mode
	round  round.Round
	state  TurnState

	checked        []bool
	progress       int
	optionsShown   bool
	optionsEnabled bool
	feedbackQueued bool
	answered       int
	correct        bool
}

func newTurn(e *env, number int, mode Mode, r round.Round, hooks turnHooks) *Turn {
	return &Turn{
		env:     e,
		hooks:   hooks,
		log:     e.log.WithField("turn", number),
		number:  number,
		mode:    mode,
		round:   r,
		state:   TurnIdle,
		checked: make([]bool, r.ItemCount),
	}
}

func (t *Turn) State() TurnState {
	return t.state
}

func (t *Turn) advance(to TurnState) bool {
	for _, next := range turnTransitions[t.state] {
		if next == to {
			t.log.WithFields(logrus.Fields{"from": t.state, "to": to}).Debug("turn transition")
			t.state = to
			return true
		}
	}
	return false
}

func (t *Turn) start() {
	if !t.advance(TurnPrompting) {
		return
	}
	t.speech.Say(promptText, t.reveal)
}

func (t *Turn) reveal() {
	if t.mode == ModeUser {
		if !t.advance(TurnCounting) {
			return
		}
		t.progress = 0
		t.view.RenderItems(t.round.Icon, t.round.ItemCount, true)
		return
	}

	if !t.advance(TurnRevealing) {
		return
	}
	t.view.RenderItems(t.round.Icon, t.round.ItemCount, false)
	for i := 0; i < t.round.ItemCount; i++ {
		index := i
		t.speech.Enqueue(speech.Request{
			Text:    strconv.Itoa(index + 1),
			OnStart: func() { t.checkItem(index) },
		})
	}
	t.speech.Enqueue(speech.Request{OnEnd: t.showOptions})
}

func (t *Turn) checkItem(index int) {
	if t.state != TurnRevealing || t.checked[index] {
		return
	}
	t.checked[index] = true
	t.view.MarkItemChecked(index)
}

// TapItem counts one item in user mode. Taps on checked items, taps past the
// total and taps outside the counting phase are ignored.
func (t *Turn) TapItem(index int) bool {
	if t.state != TurnCounting || t.progress >= t.round.CorrectAnswer {
		return false
	}
	if index < 0 || index >= len(t.checked) || t.checked[index] {
		return false
	}

	t.speech.CancelAll()
	t.progress++
	t.checked[index] = true
	t.view.MarkItemChecked(index)

	count := t.progress
	t.speech.Say(strconv.Itoa(count), func() {
		if count == t.round.CorrectAnswer {
			t.showOptions()
		}
	})
	return true
}

func (t *Turn) showOptions() {
	if t.optionsShown || !t.advance(TurnOptions) {
		return
	}
	t.optionsShown = true
	t.speech.Say(optionsCueText, t.enableOptions)
}

func (t *Turn) enableOptions() {
	if t.state != TurnOptions || t.optionsEnabled {
		return
	}
	t.optionsEnabled = true
	t.view.RenderOptions(t.round.Options)
}

// HoverOption previews an option's value aloud.
func (t *Turn) HoverOption(value int) bool {
	if !t.acceptsAnswer(value) {
		return false
	}
	text, err := numeral.Count(value)
	if err != nil {
		text = strconv.Itoa(value)
	}
	t.speech.CancelAll()
	t.speech.Say(text, nil)
	return true
}

// SubmitAnswer resolves the turn with the chosen option.
func (t *Turn) SubmitAnswer(value int) bool {
	if !t.acceptsAnswer(value) || !t.advance(TurnResolved) {
		return false
	}

	t.speech.CancelAll()
	t.view.DisableOptions()

	t.answered = value
	t.correct = value == t.round.CorrectAnswer
	t.hooks.resolved(t.correct)

	text, clip := correctText, ClipCorrect
	if t.correct {
		t.view.MarkOption(value, MarkCorrect)
		t.view.Celebrate(CelebrateAnswer)
	} else {
		text, clip = fmt.Sprintf(wrongTextFormat, t.round.CorrectAnswer), ClipError
		t.view.MarkOption(value, MarkWrong)
		t.view.MarkOption(t.round.CorrectAnswer, MarkCorrect)
	}
	t.view.ShowFeedback(text, t.correct)

	t.sound.Play(clip, func(err error) {
		t.sched.Post(func() { t.speakFeedback(text, err) })
	})
	return true
}

func (t *Turn) speakFeedback(text string, soundErr error) {
	if t.state != TurnResolved || t.feedbackQueued {
		return
	}
	if soundErr != nil {
		t.log.WithError(soundErr).Warn("sound effect failed")
	}
	t.feedbackQueued = true
	t.speech.Say(text, t.finish)
}

func (t *Turn) finish() {
	if !t.advance(TurnDone) {
		return
	}
	t.hooks.done()
}

func (t *Turn) abandon() {
	t.advance(TurnAbandoned)
}

func (t *Turn) acceptsAnswer(value int) bool {
	if t.state != TurnOptions || !t.optionsEnabled {
		return false
	}
	for _, o := range t.round.Options {
		if o == value {
			return true
		}
	}
	return false
}

// TurnView is the externally visible part of a turn. The answer is only
// revealed once the turn is resolved.
type TurnView struct {
	Number         int       `json:"number"`
	State          TurnState `json:"state"`
	Mode           Mode      `json:"mode"`
	Icon           string    `json:"icon"`
	ItemCount      int       `json:"item_count"`
	Checked        []int     `json:"checked"`
	Progress       int       `json:"progress"`
	Options        []int     `json:"options,omitempty"`
	OptionsEnabled bool      `json:"options_enabled"`
	Answered       int       `json:"answered,omitempty"`
	Correct        *bool     `json:"correct,omitempty"`
	CorrectAnswer  int       `json:"correct_answer,omitempty"`
}

func (t *Turn) snapshot() TurnView {
	v := TurnView{
		Number:         t.number,
		State:          t.state,
		Mode:           t.mode,
		Icon:           t.round.Icon,
		Checked:        []int{},
		Progress:       t.progress,
		OptionsEnabled: t.optionsEnabled,
	}
	if t.state != TurnIdle && t.state != TurnPrompting {
		v.ItemCount = t.round.ItemCount
	}
	for i, c := range t.checked {
		if c {
			v.Checked = append(v.Checked, i)
		}
	}
	if t.optionsEnabled {
		v.Options = append([]int(nil), t.round.Options...)
	}
	if t.answered != 0 {
		correct := t.correct
		v.Answered = t.answered
		v.Correct = &correct
		v.CorrectAnswer = t.round.CorrectAnswer
	}
	return v
}
