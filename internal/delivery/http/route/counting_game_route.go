package route

import (
	"github.com/dd13556li/count/internal/delivery/http/handler"
	"github.com/dd13556li/count/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupCountingGameRoute(api *fiber.App, handler handler.CountingGameHandler, m *middleware.Middleware) {
	api.Get("/difficulties", handler.ListDifficulties)

	router := api.Group("/games")
	{
		router.Post("/", handler.Create)
		router.Get("/:game_id", handler.Get)
		router.Delete("/:game_id", handler.Leave)
		router.Put("/:game_id/mode", handler.SelectMode)
		router.Post("/:game_id/rounds", handler.SelectDifficulty)
		router.Post("/:game_id/answer", handler.SubmitAnswer)
		router.Post("/:game_id/items/:index/tap", handler.TapItem)
		router.Post("/:game_id/options/:value/hover", handler.HoverOption)
		router.Post("/:game_id/play-again", handler.PlayAgain)
		router.Put("/:game_id/voices", handler.UpdateVoices)
		router.Get("/:game_id/commands", m.NoStore(), handler.Commands)
		router.Post("/:game_id/speech/:utterance_id", handler.ReportSpeech)
		router.Post("/:game_id/sounds/:play_id", handler.ReportSound)
	}
}

func SetupSpeechAudioRoute(api *fiber.App, handler handler.SpeechAudioHandler, m *middleware.Middleware) {
	api.Get("/tts", handler.Synthesize)
}
