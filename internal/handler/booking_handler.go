package handler

import (
	"net/http"

	"github.com/Supanida/trip-agency-service/internal/dto"
	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/trips/:id/bookings", h.CreateBooking)
	e.DELETE("/api/v1/trips/:id/bookings", h.CancelBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booked, err := h.svc.Book(c.Request().Context(), req.TravelerID, tripID)
	if err != nil {
		return httpError(err)
	}
	if !booked {
		// Full or already booked: an expected outcome, not a failure.
		return c.JSON(http.StatusOK, map[string]bool{"booked": false})
	}
	return c.JSON(http.StatusCreated, map[string]bool{"booked": true})
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CancelBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cancelled, err := h.svc.Cancel(c.Request().Context(), req.TravelerID, tripID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"cancelled": cancelled})
}
