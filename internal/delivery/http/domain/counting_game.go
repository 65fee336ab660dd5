package domain

var (
	DIFFICULTY_LIST_SUCCESS      = "Difficulties retrieved"
	GAME_CREATE_SUCCESS          = "Game created"
	GAME_CREATE_FAILED           = "Failed to create game"
	GAME_GET_SUCCESS             = "Game retrieved"
	GAME_GET_FAILED              = "Failed to get game"
	GAME_LEAVE_SUCCESS           = "Game closed"
	GAME_LEAVE_FAILED            = "Failed to close game"
	GAME_SELECT_MODE_SUCCESS     = "Mode selected"
	GAME_SELECT_MODE_FAILED      = "Failed to select mode"
	GAME_START_ROUND_SUCCESS     = "Round started"
	GAME_START_ROUND_FAILED      = "Failed to start round"
	GAME_SUBMIT_ANSWER_SUCCESS   = "Answer submitted"
	GAME_SUBMIT_ANSWER_FAILED    = "Failed to submit answer"
	GAME_TAP_ITEM_SUCCESS        = "Item tapped"
	GAME_TAP_ITEM_FAILED         = "Failed to tap item"
	GAME_HOVER_OPTION_SUCCESS    = "Option previewed"
	GAME_HOVER_OPTION_FAILED     = "Failed to preview option"
	GAME_PLAY_AGAIN_SUCCESS      = "Back to start"
	GAME_PLAY_AGAIN_FAILED       = "Failed to play again"
	GAME_UPDATE_VOICES_SUCCESS   = "Voices updated"
	GAME_UPDATE_VOICES_FAILED    = "Failed to update voices"
	GAME_COMMANDS_SUCCESS        = "Commands retrieved"
	GAME_COMMANDS_FAILED         = "Failed to get commands"
	GAME_REPORT_PLAYBACK_SUCCESS = "Playback event recorded"
	GAME_REPORT_PLAYBACK_FAILED  = "Failed to record playback event"
	SPEECH_AUDIO_FAILED          = "Failed to synthesize speech"
	SPEECH_AUDIO_UNAVAILABLE     = "Speech synthesis is not configured"
	GAME_NOT_FOUND               = "game not found"
)
