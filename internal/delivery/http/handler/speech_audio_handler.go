package handler

import (
	"errors"

	"github.com/dd13556li/count/internal/delivery/http/domain"
	"github.com/dd13556li/count/internal/delivery/http/entity"
	"github.com/dd13556li/count/internal/delivery/http/usecase"
	"github.com/dd13556li/count/internal/pkg/response"
	"github.com/dd13556li/count/internal/pkg/tts"
	"github.com/dd13556li/count/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	SpeechAudioHandler interface {
		Synthesize(ctx *fiber.Ctx) error
	}

	speechAudioHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.SpeechAudioUsecase
	}
)

func NewSpeechAudioHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.SpeechAudioUsecase) SpeechAudioHandler {
	return &speechAudioHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /tts?text=...&lang=zh-TW
func (h *speechAudioHandler) Synthesize(ctx *fiber.Ctx) error {
	var req entity.SpeechAudioRequest
	if err := h.validator.ParseQueryAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SPEECH_AUDIO_FAILED, err, h.logger).Send(ctx)
	}

	audio, contentType, err := h.usecase.Synthesize(ctx.UserContext(), req.Text, req.Lang)
	if errors.Is(err, tts.ErrUnavailable) {
		return response.NewFailed(domain.SPEECH_AUDIO_UNAVAILABLE, fiber.NewError(fiber.StatusServiceUnavailable, err.Error()), h.logger).Send(ctx)
	}
	if err != nil {
		return response.NewFailed(domain.SPEECH_AUDIO_FAILED, fiber.NewError(fiber.StatusBadGateway, err.Error()), h.logger).Send(ctx)
	}

	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return ctx.Send(audio)
}
