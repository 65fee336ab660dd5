package handler

import (
	"errors"
	"strconv"

	"github.com/dd13556li/count/internal/delivery/http/domain"
	"github.com/dd13556li/count/internal/delivery/http/entity"
	"github.com/dd13556li/count/internal/delivery/http/usecase"
	"github.com/dd13556li/count/internal/game"
	"github.com/dd13556li/count/internal/game/remote"
	"github.com/dd13556li/count/internal/pkg/response"
	"github.com/dd13556li/count/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	CountingGameHandler interface {
		ListDifficulties(ctx *fiber.Ctx) error
		Create(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		Leave(ctx *fiber.Ctx) error
		SelectMode(ctx *fiber.Ctx) error
		SelectDifficulty(ctx *fiber.Ctx) error
		SubmitAnswer(ctx *fiber.Ctx) error
		TapItem(ctx *fiber.Ctx) error
		HoverOption(ctx *fiber.Ctx) error
		PlayAgain(ctx *fiber.Ctx) error
		UpdateVoices(ctx *fiber.Ctx) error
		Commands(ctx *fiber.Ctx) error
		ReportSpeech(ctx *fiber.Ctx) error
		ReportSound(ctx *fiber.Ctx) error
	}

	countingGameHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.CountingGameUsecase
	}
)

func NewCountingGameHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.CountingGameUsecase) CountingGameHandler {
	return &countingGameHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /difficulties
func (h *countingGameHandler) ListDifficulties(ctx *fiber.Ctx) error {
	return response.NewSuccess(domain.DIFFICULTY_LIST_SUCCESS, h.usecase.Difficulties(ctx.UserContext()), nil).Send(ctx)
}

// POST /games
func (h *countingGameHandler) Create(ctx *fiber.Ctx) error {
	var req entity.CreateGameRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GAME_CREATE_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.Create(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.GAME_CREATE_FAILED, h.gameError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.GAME_CREATE_SUCCESS, res, nil).Status(fiber.StatusCreated).Send(ctx)
}

// GET /games/:game_id
func (h *countingGameHandler) Get(ctx *fiber.Ctx) error {
	res, err := h.usecase.Get(ctx.UserContext(), ctx.Params("game_id"))
	if err != nil {
		return response.NewFailed(domain.GAME_GET_FAILED, h.gameError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.GAME_GET_SUCCESS, res, nil).Send(ctx)
}

// DELETE /games/:game_id
func (h *countingGameHandler) Leave(ctx *fiber.Ctx) error {
	if err := h.usecase.Leave(ctx.UserContext(), ctx.Params("game_id")); err != nil {
		return response.NewFailed(domain.GAME_LEAVE_FAILED, h.gameError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.GAME_LEAVE_SUCCESS, nil, nil).Send(ctx)
}

// PUT /games/:game_id/mode
func (h *countingGameHandler) SelectMode(ctx *fiber.Ctx) error {
	var req entity.SelectModeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GAME_SELECT_MODE_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.SelectMode(ctx.UserContext(), ctx.Params("game_id"), game.Mode(req.Mode))
	return h.sendAction(ctx, res, err, domain.GAME_SELECT_MODE_SUCCESS, domain.GAME_SELECT_MODE_FAILED)
}

// POST /games/:game_id/rounds
func (h *countingGameHandler) SelectDifficulty(ctx *fiber.Ctx) error {
	var req entity.SelectDifficultyRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GAME_START_ROUND_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.SelectDifficulty(ctx.UserContext(), ctx.Params("game_id"), req.Difficulty)
	return h.sendAction(ctx, res, err, domain.GAME_START_ROUND_SUCCESS, domain.GAME_START_ROUND_FAILED)
}

// POST /games/:game_id/answer
func (h *countingGameHandler) SubmitAnswer(ctx *fiber.Ctx) error {
	var req entity.SubmitAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GAME_SUBMIT_ANSWER_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.SubmitAnswer(ctx.UserContext(), ctx.Params("game_id"), req.Value)
	return h.sendAction(ctx, res, err, domain.GAME_SUBMIT_ANSWER_SUCCESS, domain.GAME_SUBMIT_ANSWER_FAILED)
}

// POST /games/:game_id/items/:index/tap
func (h *countingGameHandler) TapItem(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index", -1)
	if err != nil || index < 0 {
		return response.NewFailed(domain.GAME_TAP_ITEM_FAILED, fiber.NewError(fiber.StatusBadRequest, "index must be a non-negative integer"), h.logger).Send(ctx)
	}

	res, err := h.usecase.TapItem(ctx.UserContext(), ctx.Params("game_id"), index)
	return h.sendAction(ctx, res, err, domain.GAME_TAP_ITEM_SUCCESS, domain.GAME_TAP_ITEM_FAILED)
}

// POST /games/:game_id/options/:value/hover
func (h *countingGameHandler) HoverOption(ctx *fiber.Ctx) error {
	value, err := ctx.ParamsInt("value", 0)
	if err != nil || value < 1 {
		return response.NewFailed(domain.GAME_HOVER_OPTION_FAILED, fiber.NewError(fiber.StatusBadRequest, "value must be a positive integer"), h.logger).Send(ctx)
	}

	res, err := h.usecase.HoverOption(ctx.UserContext(), ctx.Params("game_id"), value)
	return h.sendAction(ctx, res, err, domain.GAME_HOVER_OPTION_SUCCESS, domain.GAME_HOVER_OPTION_FAILED)
}

// POST /games/:game_id/play-again
func (h *countingGameHandler) PlayAgain(ctx *fiber.Ctx) error {
	res, err := h.usecase.PlayAgain(ctx.UserContext(), ctx.Params("game_id"))
	return h.sendAction(ctx, res, err, domain.GAME_PLAY_AGAIN_SUCCESS, domain.GAME_PLAY_AGAIN_FAILED)
}

// PUT /games/:game_id/voices
func (h *countingGameHandler) UpdateVoices(ctx *fiber.Ctx) error {
	var req entity.UpdateVoicesRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GAME_UPDATE_VOICES_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.UpdateVoices(ctx.UserContext(), ctx.Params("game_id"), req.Voices)
	return h.sendAction(ctx, res, err, domain.GAME_UPDATE_VOICES_SUCCESS, domain.GAME_UPDATE_VOICES_FAILED)
}

// GET /games/:game_id/commands?after=N
func (h *countingGameHandler) Commands(ctx *fiber.Ctx) error {
	var after uint64
	if v := ctx.Query("after"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return response.NewFailed(domain.GAME_COMMANDS_FAILED, fiber.NewError(fiber.StatusBadRequest, "after must be a non-negative integer"), h.logger).Send(ctx)
		}
		after = n
	}

	res, err := h.usecase.Commands(ctx.UserContext(), ctx.Params("game_id"), after)
	if err != nil {
		return response.NewFailed(domain.GAME_COMMANDS_FAILED, h.gameError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.GAME_COMMANDS_SUCCESS, res, nil).Send(ctx)
}

// POST /games/:game_id/speech/:utterance_id
func (h *countingGameHandler) ReportSpeech(ctx *fiber.Ctx) error {
	var req entity.PlaybackEventRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GAME_REPORT_PLAYBACK_FAILED, err, h.logger).Send(ctx)
	}

	if err := h.usecase.ReportSpeech(ctx.UserContext(), ctx.Params("game_id"), ctx.Params("utterance_id"), req); err != nil {
		return response.NewFailed(domain.GAME_REPORT_PLAYBACK_FAILED, h.gameError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.GAME_REPORT_PLAYBACK_SUCCESS, nil, nil).Send(ctx)
}

// POST /games/:game_id/sounds/:play_id
func (h *countingGameHandler) ReportSound(ctx *fiber.Ctx) error {
	var req entity.PlaybackEventRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.GAME_REPORT_PLAYBACK_FAILED, err, h.logger).Send(ctx)
	}

	if err := h.usecase.ReportSound(ctx.UserContext(), ctx.Params("game_id"), ctx.Params("play_id"), req); err != nil {
		return response.NewFailed(domain.GAME_REPORT_PLAYBACK_FAILED, h.gameError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.GAME_REPORT_PLAYBACK_SUCCESS, nil, nil).Send(ctx)
}

func (h *countingGameHandler) sendAction(ctx *fiber.Ctx, res *entity.ActionResponse, err error, success, failed string) error {
	if err != nil {
		return response.NewFailed(failed, h.gameError(err), h.logger).Send(ctx)
	}
	return response.NewSuccess(success, res, nil).Send(ctx)
}

// gameError maps usecase errors to HTTP errors.
func (h *countingGameHandler) gameError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrGameNotFound):
		return fiber.NewError(fiber.StatusNotFound, domain.GAME_NOT_FOUND)
	case errors.Is(err, game.ErrUnknownDifficulty), errors.Is(err, remote.ErrUnsupportedEvent):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, remote.ErrUnknownPlayback):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}
