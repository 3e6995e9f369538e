package dto

import "time"

type CreateTripRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" validate:"gte=0"`
	Date         time.Time `json:"date" validate:"required"`
	MinTravelers int       `json:"min_travelers" validate:"gte=0"`
	MaxTravelers int       `json:"max_travelers" validate:"gte=0,gtefield=MinTravelers"`
	MaxGuides    int       `json:"max_guides" validate:"gte=0"`
}

type UpdateTripRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" validate:"gte=0"`
	Date         time.Time `json:"date" validate:"required"`
	MinTravelers int       `json:"min_travelers" validate:"gte=0"`
	MaxTravelers int       `json:"max_travelers" validate:"gte=0,gtefield=MinTravelers"`
	MaxGuides    int       `json:"max_guides" validate:"gte=0"`
}

type SubmitApplicationRequest struct {
	GuideID uint   `json:"guide_id" validate:"required"`
	CV      string `json:"cv"`
}

type WithdrawApplicationRequest struct {
	GuideID uint `json:"guide_id" validate:"required"`
}

type DecideApplicationRequest struct {
	Accepted bool `json:"accepted"`
}

type AssignGuideRequest struct {
	GuideID uint `json:"guide_id" validate:"required"`
}

type CreateBookingRequest struct {
	TravelerID uint `json:"traveler_id" validate:"required"`
}

type CancelBookingRequest struct {
	TravelerID uint `json:"traveler_id" validate:"required"`
}

type MarkAllReadRequest struct {
	RecipientKind string `json:"recipient_kind" validate:"required,oneof=guide traveler"`
	RecipientID   uint   `json:"recipient_id" validate:"required"`
}

type CreateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text       string `json:"text"`
	AuthorID   uint   `json:"author_id" validate:"required"`
	TargetID   uint   `json:"target_id" validate:"required"`
	TargetKind string `json:"target_kind" validate:"required,oneof=guide trip"`
}

type EditReviewRequest struct {
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text     string `json:"text"`
	AuthorID uint   `json:"author_id" validate:"required"`
}
