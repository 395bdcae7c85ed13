package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestor-confeitaria/assistant-api/internal/dispatch"
)

// assistantRequest is the single-endpoint RPC envelope: every business
// operation is an intent name plus an intent-specific payload.
type assistantRequest struct {
	Intent  string          `json:"intent" validate:"required"`
	Payload json.RawMessage `json:"payload"`
}

// AssistantHandler exposes the intent dispatcher over HTTP.
type AssistantHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewAssistantHandler(d *dispatch.Dispatcher) *AssistantHandler {
	return &AssistantHandler{dispatcher: d}
}

// Handle implements POST /v1/assistente.
func (h *AssistantHandler) Handle(c echo.Context) error {
	var req assistantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	uid, _ := ctxIdentity(c)
	result, err := h.dispatcher.Dispatch(c.Request().Context(), uid, req.Intent, req.Payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
