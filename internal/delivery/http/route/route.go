package route

import (
	"github.com/dd13556li/count/internal/delivery/http/handler"
	"github.com/dd13556li/count/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api                 *fiber.App
	Middleware          *middleware.Middleware
	CountingGameHandler handler.CountingGameHandler
	SpeechAudioHandler  handler.SpeechAudioHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(c.Middleware.RequestID())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${locals:requestid}\n",
		// Clients poll the outbox several times a second.
		Next: func(ctx *fiber.Ctx) bool {
			return ctx.Method() == fiber.MethodGet && c.Middleware.QuietPath(ctx.Path())
		},
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupCountingGameRoute(c.Api, c.CountingGameHandler, c.Middleware)
	SetupSpeechAudioRoute(c.Api, c.SpeechAudioHandler, c.Middleware)
}
