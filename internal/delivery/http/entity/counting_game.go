package entity

import (
	"github.com/dd13556li/count/internal/game"
	"github.com/dd13556li/count/internal/game/remote"
	"github.com/dd13556li/count/internal/game/speech"
)

type DifficultyResponse struct {
	Key          string `json:"key"`
	MinItems     int    `json:"min_items"`
	MaxItems     int    `json:"max_items"`
	OptionsCount int    `json:"options_count"`
}

// CreateGameRequest describes the client. Speech and Sound say whether the
// browser can synthesize speech and play clips; without speech the server
// paces utterances itself.
type CreateGameRequest struct {
	Mode   string         `json:"mode" validate:"omitempty,oneof=ai user"`
	Speech bool           `json:"speech"`
	Sound  bool           `json:"sound"`
	Voices []speech.Voice `json:"voices" validate:"omitempty,dive"`
}

type SelectModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=ai user"`
}

type SelectDifficultyRequest struct {
	Difficulty string `json:"difficulty" validate:"required"`
}

type SubmitAnswerRequest struct {
	Value int `json:"value" validate:"required,min=1,max=99"`
}

type UpdateVoicesRequest struct {
	Voices []speech.Voice `json:"voices" validate:"dive"`
}

type PlaybackEventRequest struct {
	Event string `json:"event" validate:"required,oneof=start end error ended rejected"`
	Error string `json:"error" validate:"max=500"`
}

type GameResponse struct {
	ID string `json:"id"`
	game.Snapshot
	SpeechBackend string `json:"speech_backend"`
	LastSeq       uint64 `json:"last_seq"`
}

// ActionResponse is returned by every game operation. Accepted is false
// when the game ignored the operation in its current state.
type ActionResponse struct {
	Accepted bool         `json:"accepted"`
	Game     GameResponse `json:"game"`
}

type CommandsResponse struct {
	Commands  []remote.Command `json:"commands"`
	OldestSeq uint64           `json:"oldest_seq"`
	LastSeq   uint64           `json:"last_seq"`
	Truncated bool             `json:"truncated"`
}

type SpeechAudioRequest struct {
	Text string `json:"text" query:"text" validate:"required,max=200"`
	Lang string `json:"lang" query:"lang" validate:"omitempty,max=20"`
}
