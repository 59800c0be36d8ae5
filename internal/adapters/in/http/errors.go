package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrNoOpTransition),
		errors.Is(err, errs.ErrNotReady),
		errors.Is(err, errs.ErrDuplicateKey),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnknownPart),
		errors.Is(err, errs.ErrInactiveReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders every failure as an Error body. Internal errors are logged
// and their text is not sent to the client.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, Error{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message)})
			return
		}

		code := StatusOf(err)
		message := err.Error()
		if code == http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			message = http.StatusText(code)
		}
		_ = c.JSON(code, Error{Code: code, Message: message})
	}
}
