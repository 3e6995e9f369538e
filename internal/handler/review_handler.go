package handler

import (
	"net/http"
	"strconv"

	"github.com/Supanida/trip-agency-service/internal/dto"
	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/reviews", h.Create)
	e.PUT("/api/v1/reviews/:id", h.Edit)
	e.GET("/api/v1/reviews/average", h.Average)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review := &models.Review{
		Rating:     req.Rating,
		Text:       req.Text,
		AuthorID:   req.AuthorID,
		TargetID:   req.TargetID,
		TargetKind: models.TargetKind(req.TargetKind),
	}
	if err := h.svc.Create(c.Request().Context(), review); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) Edit(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EditReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.svc.Edit(c.Request().Context(), id, req.AuthorID, req.Rating, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) Average(c echo.Context) error {
	kind := models.TargetKind(c.QueryParam("target_kind"))
	if kind != models.TargetGuide && kind != models.TargetTrip {
		return echo.NewHTTPError(http.StatusBadRequest, "target_kind must be guide or trip")
	}
	targetID, err := strconv.ParseUint(c.QueryParam("target_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid target_id")
	}

	average, err := h.svc.AverageRating(c.Request().Context(), kind, uint(targetID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]float64{"average": average})
}
