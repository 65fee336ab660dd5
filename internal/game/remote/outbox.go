// Package remote drives a browser client: presentation and playback requests
// become sequenced commands the client polls, and the client reports
// playback progress back.
package remote

import "github.com/dd13556li/count/internal/game"

const (
	CommandOverlayShow    = "overlay.show"
	CommandTurnStart      = "turn.start"
	CommandItemsRender    = "items.render"
	CommandItemCheck      = "item.check"
	CommandOptionsRender  = "options.render"
	CommandOptionsDisable = "options.disable"
	CommandOptionMark     = "option.mark"
	CommandFeedbackShow   = "feedback.show"
	CommandScoreUpdate    = "score.update"
	CommandCelebrate      = "celebrate"
	CommandSummaryShow    = "summary.show"
	CommandSpeechSpeak    = "speech.speak"
	CommandSpeechCancel   = "speech.cancel"
	CommandSoundPlay      = "sound.play"
)

// DefaultCapacity bounds how many commands an outbox retains.
const DefaultCapacity = 512

type Payload map[string]any

type Command struct {
	Seq  uint64  `json:"seq"`
	Type string  `json:"type"`
	Data Payload `json:"data,omitempty"`
}

// Outbox is an append-only, bounded log of commands. It implements
// game.Presenter. Like the game it belongs to, it is used from one goroutine.
type Outbox struct {
	capacity int
	seq      uint64
	commands []Command
}

func NewOutbox(capacity int) *Outbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Outbox{capacity: capacity}
}

func (o *Outbox) push(typ string, data Payload) {
	o.seq++
	o.commands = append(o.commands, Command{Seq: o.seq, Type: typ, Data: data})
	if over := len(o.commands) - o.capacity; over > 0 {
		o.commands = append(o.commands[:0:0], o.commands[over:]...)
	}
}

// Since returns the retained commands with a sequence number above after.
func (o *Outbox) Since(after uint64) []Command {
	out := []Command{}
	for _, c := range o.commands {
		if c.Seq > after {
			out = append(out, c)
		}
	}
	return out
}

// Last is the sequence number of the newest command.
func (o *Outbox) Last() uint64 {
	return o.seq
}

// Oldest is the sequence number of the oldest retained command, or Last()+1
// when nothing is retained.
func (o *Outbox) Oldest() uint64 {
	if len(o.commands) == 0 {
		return o.seq + 1
	}
	return o.commands[0].Seq
}

// Truncated reports whether commands after the given sequence number were
// trimmed before they could be read. Clients seeing it should resync from a
// snapshot.
func (o *Outbox) Truncated(after uint64) bool {
	return after+1 < o.Oldest()
}

func (o *Outbox) ShowOverlay(ov game.Overlay) {
	o.push(CommandOverlayShow, Payload{"overlay": ov})
}

func (o *Outbox) StartTurn(number, total int) {
	o.push(CommandTurnStart, Payload{"turn": number, "total": total})
}

func (o *Outbox) RenderItems(icon string, count int, counting bool) {
	o.push(CommandItemsRender, Payload{"icon": icon, "count": count, "counting": counting})
}

func (o *Outbox) MarkItemChecked(index int) {
	o.push(CommandItemCheck, Payload{"index": index})
}

func (o *Outbox) RenderOptions(values []int) {
	o.push(CommandOptionsRender, Payload{"values": append([]int(nil), values...)})
}

func (o *Outbox) DisableOptions() {
	o.push(CommandOptionsDisable, nil)
}

func (o *Outbox) MarkOption(value int, mark game.OptionMark) {
	o.push(CommandOptionMark, Payload{"value": value, "mark": mark})
}

func (o *Outbox) ShowFeedback(text string, correct bool) {
	o.push(CommandFeedbackShow, Payload{"text": text, "correct": correct})
}

func (o *Outbox) UpdateScore(score int) {
	o.push(CommandScoreUpdate, Payload{"score": score})
}

func (o *Outbox) Celebrate(c game.Celebration) {
	o.push(CommandCelebrate, Payload{"kind": c})
}

func (o *Outbox) ShowSummary(s game.Summary) {
	o.push(CommandSummaryShow, Payload{
		"score":   s.Score,
		"correct": s.Correct,
		"total":   s.Total,
		"tier":    s.Tier,
		"message": s.Message,
	})
}
