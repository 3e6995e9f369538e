package middleware

import (
	"net/http"

	"github.com/Supanida/trip-agency-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every unhandled error as a dto.ErrorResponse so the
// trip, application, assignment, booking, notification and review routes
// share one error shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
