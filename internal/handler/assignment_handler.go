package handler

import (
	"net/http"

	"github.com/Supanida/trip-agency-service/internal/dto"
	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AssignmentHandler struct {
	svc service.AssignmentService
}

func NewAssignmentHandler(svc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

func (h *AssignmentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/trips/:id/assignments", h.AssignGuide)
	e.POST("/api/v1/trips/:id/assignments/auto", h.AssignBestGuides)
	e.GET("/api/v1/trips/:id/assignments/:guideID", h.IsAssigned)
	e.DELETE("/api/v1/trips/:id/assignments/:guideID", h.RemoveGuide)
}

func (h *AssignmentHandler) AssignGuide(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignGuideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.AssignGuide(c.Request().Context(), req.GuideID, tripID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *AssignmentHandler) AssignBestGuides(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	assigned, err := h.svc.AssignBestGuides(c.Request().Context(), tripID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.AssignBestGuidesResponse{Assigned: assigned})
}

func (h *AssignmentHandler) IsAssigned(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	guideID, err := parseID(c, "guideID")
	if err != nil {
		return err
	}
	assigned, err := h.svc.IsAssigned(c.Request().Context(), guideID, tripID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"assigned": assigned})
}

func (h *AssignmentHandler) RemoveGuide(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	guideID, err := parseID(c, "guideID")
	if err != nil {
		return err
	}
	removed, err := h.svc.RemoveGuide(c.Request().Context(), guideID, tripID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"removed": removed})
}
