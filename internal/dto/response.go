package dto

import (
	"time"

	"github.com/Supanida/trip-agency-service/internal/models"
)

type TripResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Date         time.Time `json:"date"`
	MinTravelers int       `json:"min_travelers"`
	MaxTravelers int       `json:"max_travelers"`
	MaxGuides    int       `json:"max_guides"`
	CreatedAt    time.Time `json:"created_at"`
}

type TripStatusResponse struct {
	ID             uint `json:"id"`
	AvailableSpots int  `json:"available_spots"`
	HasMinimum     bool `json:"has_minimum_participants"`
	Full           bool `json:"full"`
	OpenGuideSlots int  `json:"open_guide_slots"`
}

type ApplicationResponse struct {
	ID        uint                     `json:"id"`
	GuideID   uint                     `json:"guide_id"`
	TripID    uint                     `json:"trip_id"`
	Status    models.ApplicationStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

type BookingResponse struct {
	ID         uint      `json:"id"`
	TravelerID uint      `json:"traveler_id"`
	TripID     uint      `json:"trip_id"`
	Active     bool      `json:"active"`
	BookedAt   time.Time `json:"booked_at"`
}

type AssignBestGuidesResponse struct {
	Assigned int `json:"assigned"`
}

type NotificationResponse struct {
	ID            uint                 `json:"id"`
	RecipientID   uint                 `json:"recipient_id"`
	RecipientKind models.RecipientKind `json:"recipient_kind"`
	Text          string               `json:"text"`
	Read          bool                 `json:"read"`
	CreatedAt     time.Time            `json:"created_at"`
}

type ReviewResponse struct {
	ID         uint              `json:"id"`
	Rating     int               `json:"rating"`
	Text       string            `json:"text"`
	AuthorID   uint              `json:"author_id"`
	TargetID   uint              `json:"target_id"`
	TargetKind models.TargetKind `json:"target_kind"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToTripResponse(t *models.Trip) TripResponse {
	return TripResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Price:        t.Price,
		Date:         t.Date,
		MinTravelers: t.MinTravelers,
		MaxTravelers: t.MaxTravelers,
		MaxGuides:    t.MaxGuides,
		CreatedAt:    t.CreatedAt,
	}
}

func ToApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		GuideID:   a.GuideID,
		TripID:    a.TripID,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		TravelerID: b.TravelerID,
		TripID:     b.TripID,
		Active:     b.Active,
		BookedAt:   b.BookedAt,
	}
}

func ToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		RecipientID:   n.RecipientID,
		RecipientKind: n.RecipientKind,
		Text:          n.Text,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		Rating:     r.Rating,
		Text:       r.Text,
		AuthorID:   r.AuthorID,
		TargetID:   r.TargetID,
		TargetKind: r.TargetKind,
	}
}
