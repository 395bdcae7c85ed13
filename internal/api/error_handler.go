package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The
// error object mirrors the CallError shape so mobile clients can branch on
// kind without parsing messages.
type errorResponse struct {
	Success bool              `json:"success"`
	Error   *domain.CallError `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps CallError kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success":false,"error":{...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, ce := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: ce})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, *domain.CallError) {
	if ce, ok := domain.AsCallError(err); ok {
		return statusForKind(ce.Kind), ce
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := domain.KindInvalidArgument
		switch he.Code {
		case http.StatusUnauthorized:
			kind = domain.KindUnauthenticated
		case http.StatusNotFound:
			kind = domain.KindNotFound
		case http.StatusInternalServerError:
			kind = domain.KindInternal
		}
		return he.Code, &domain.CallError{Kind: kind, Message: fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, &domain.CallError{
		Kind:    domain.KindInternal,
		Message: "Ocorreu um erro inesperado no servidor.",
	}
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindPermissionDenied:
		return http.StatusForbidden
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindResourceExhausted:
		return http.StatusTooManyRequests
	case domain.KindUnimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
