package http

import (
	"errors"
	"net/http"

	"mealdrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain error kinds to HTTP statuses. State machine and
// stock violations are well-formed requests the current state rejects, so
// they map to 422 rather than 400; a lost claim race maps to 409.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrInsufficientStock):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: message})
}
