package handler

import (
	"net/http"
	"strconv"

	"github.com/Supanida/trip-agency-service/internal/dto"
	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/notifications", h.List)
	e.GET("/api/v1/notifications/unread-count", h.UnreadCount)
	e.POST("/api/v1/notifications/:id/read", h.MarkRead)
	e.POST("/api/v1/notifications/read-all", h.MarkAllRead)
}

func (h *NotificationHandler) List(c echo.Context) error {
	kind, recipientID, err := recipientQuery(c)
	if err != nil {
		return err
	}
	notifications, err := h.svc.List(c.Request().Context(), kind, recipientID)
	if err != nil {
		return httpError(err)
	}
	resp := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		resp[i] = dto.ToNotificationResponse(&notifications[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	kind, recipientID, err := recipientQuery(c)
	if err != nil {
		return err
	}
	count, err := h.svc.UnreadCount(c.Request().Context(), kind, recipientID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.MarkRead(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	var req dto.MarkAllReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	kind := models.RecipientKind(req.RecipientKind)
	if err := h.svc.MarkAllRead(c.Request().Context(), kind, req.RecipientID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func recipientQuery(c echo.Context) (models.RecipientKind, uint, error) {
	kind := models.RecipientKind(c.QueryParam("recipient_kind"))
	if kind != models.RecipientGuide && kind != models.RecipientTraveler {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "recipient_kind must be guide or traveler")
	}
	id, err := strconv.ParseUint(c.QueryParam("recipient_id"), 10, 64)
	if err != nil {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "invalid recipient_id")
	}
	return kind, uint(id), nil
}
