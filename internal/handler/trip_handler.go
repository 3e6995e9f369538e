package handler

import (
	"net/http"

	"github.com/Supanida/trip-agency-service/internal/dto"
	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
)

type TripHandler struct {
	trips       service.TripService
	bookings    service.BookingService
	assignments service.AssignmentService
}

func NewTripHandler(trips service.TripService, bookings service.BookingService, assignments service.AssignmentService) *TripHandler {
	return &TripHandler{trips: trips, bookings: bookings, assignments: assignments}
}

func (h *TripHandler) RegisterRoutes(e *echo.Echo) {
	trips := e.Group("/api/v1/trips")
	trips.POST("", h.CreateTrip)
	trips.GET("", h.ListTrips)
	trips.GET("/:id", h.GetTrip)
	trips.PUT("/:id", h.UpdateTrip)
	trips.DELETE("/:id", h.DeleteTrip)
	trips.GET("/:id/status", h.GetTripStatus)
}

func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req dto.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	trip := &models.Trip{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Date:         req.Date,
		MinTravelers: req.MinTravelers,
		MaxTravelers: req.MaxTravelers,
		MaxGuides:    req.MaxGuides,
	}
	if err := h.trips.Create(c.Request().Context(), trip); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

func (h *TripHandler) ListTrips(c echo.Context) error {
	trips, err := h.trips.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	resp := make([]dto.TripResponse, len(trips))
	for i := range trips {
		resp[i] = dto.ToTripResponse(&trips[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TripHandler) GetTrip(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	trip, err := h.trips.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *TripHandler) UpdateTrip(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	trip, err := h.trips.Update(c.Request().Context(), &models.Trip{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Date:         req.Date,
		MinTravelers: req.MinTravelers,
		MaxTravelers: req.MaxTravelers,
		MaxGuides:    req.MaxGuides,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *TripHandler) DeleteTrip(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.trips.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) GetTripStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	spots, err := h.bookings.AvailableSpots(ctx, id)
	if err != nil {
		return httpError(err)
	}
	hasMin, err := h.bookings.HasMinimumParticipants(ctx, id)
	if err != nil {
		return httpError(err)
	}
	full, err := h.bookings.IsFull(ctx, id)
	if err != nil {
		return httpError(err)
	}
	guideSlots, err := h.assignments.OpenSlots(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.TripStatusResponse{
		ID:             id,
		AvailableSpots: spots,
		HasMinimum:     hasMin,
		Full:           full,
		OpenGuideSlots: guideSlots,
	})
}
