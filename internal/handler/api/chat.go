package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/ratelimit"
	"DashPull/internal/services/relay"
	"DashPull/internal/usecase"
	xhttp "DashPull/pkg/http"
	xlogger "DashPull/pkg/logger"
)

// ChatHandler implements the relay contract: POST {message, history, lang,
// page_context} answered with {reply}.
type ChatHandler struct {
	logger  *xlogger.Logger
	chat    *usecase.ChatUseCase
	limiter *ratelimit.Limiter
}

func NewChatHandler(logger *xlogger.Logger, chat *usecase.ChatUseCase, limiter *ratelimit.Limiter) *ChatHandler {
	return &ChatHandler{logger: logger, chat: chat, limiter: limiter}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.Chat)
	e.GET("/api/chat/strings", h.Strings)
}

func (h *ChatHandler) Chat(c echo.Context) error {
	req := &models.ChatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	lang := models.NormalizeLang(req.Lang)

	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		wait := h.limiter.RetryAfter(c.RealIP())
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return c.JSON(http.StatusTooManyRequests, models.ChatResponse{Reply: relay.ErrorMessage(lang, nil)})
	}

	res, err := h.chat.Reply(c.Request().Context(), *req)
	if err != nil {
		msg := relay.ErrorMessage(lang, err)
		switch {
		case errors.Is(err, usecase.ErrChatDisabled):
			return c.JSON(http.StatusServiceUnavailable, models.ChatResponse{Reply: msg})
		case errors.Is(err, models.ErrRelayTimeout):
			return c.JSON(http.StatusGatewayTimeout, models.ChatResponse{Reply: msg})
		default:
			return c.JSON(http.StatusBadGateway, models.ChatResponse{Reply: msg})
		}
	}
	return c.JSON(http.StatusOK, models.ChatResponse{Reply: res.Reply})
}

func (h *ChatHandler) Strings(c echo.Context) error {
	req := &models.ChatStringsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, relay.Strings(req.Lang))
}
