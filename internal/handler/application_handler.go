package handler

import (
	"net/http"

	"github.com/Supanida/trip-agency-service/internal/dto"
	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/trips/:id/applications", h.Submit)
	e.DELETE("/api/v1/trips/:id/applications", h.Withdraw)
	e.POST("/api/v1/applications/:id/decision", h.Decide)
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	applicationID, err := h.svc.Submit(c.Request().Context(), req.CV, req.GuideID, tripID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]uint{"application_id": applicationID})
}

func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.WithdrawApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	withdrawn, err := h.svc.Withdraw(c.Request().Context(), req.GuideID, tripID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"withdrawn": withdrawn})
}

func (h *ApplicationHandler) Decide(c echo.Context) error {
	applicationID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.DecideApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Decide(c.Request().Context(), applicationID, req.Accepted); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
