package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps service sentinels onto HTTP status codes. Conflicting
// state (duplicates, capacity, illegal transitions) is 409; bad input is
// 422; anything unmatched is a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDuplicateApplication),
		errors.Is(err, service.ErrAlreadyAssigned),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrTripAlreadyStarted):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(v), nil
}
