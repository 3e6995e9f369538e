package service

import (
	"context"
	"errors"

	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, review *models.Review) error
	// Edit updates rating and text. Only the original author may edit.
	Edit(ctx context.Context, reviewID, authorID uint, rating int, text string) (*models.Review, error)
	// AverageRating returns the mean rating for a target, 0 when unreviewed.
	// Guide averages feed the assignment ranking.
	AverageRating(ctx context.Context, kind models.TargetKind, targetID uint) (float64, error)
}

type reviewService struct {
	repo  repository.ReviewRepository
	arena *Arena
}

func NewReviewService(repo repository.ReviewRepository, arena *Arena) ReviewService {
	return &reviewService{repo: repo, arena: arena}
}

func validateReview(rating int, kind models.TargetKind) error {
	if rating < 1 || rating > 5 {
		return validationErr("rating must be between 1 and 5")
	}
	if kind != models.TargetGuide && kind != models.TargetTrip {
		return validationErr("target kind must be guide or trip")
	}
	return nil
}

func (s *reviewService) Create(ctx context.Context, review *models.Review) error {
	if err := validateReview(review.Rating, review.TargetKind); err != nil {
		return err
	}
	if review.AuthorID == 0 || review.TargetID == 0 {
		return validationErr("author and target are required")
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return persistErr("create review", err)
	}

	// Trip reviews also live in the trip's register so the aggregate can
	// answer rating queries without a round trip.
	if review.TargetKind == models.TargetTrip {
		state, release, err := s.arena.Acquire(ctx, review.TargetID)
		if err != nil {
			return err
		}
		state.Reviews.Put(*review)
		release()
	}
	return nil
}

func (s *reviewService) Edit(ctx context.Context, reviewID, authorID uint, rating int, text string) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find review", err)
	}
	if review.AuthorID != authorID {
		return nil, ErrInvalidState
	}
	if err := validateReview(rating, review.TargetKind); err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Text = text
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, persistErr("update review", err)
	}

	if review.TargetKind == models.TargetTrip {
		state, release, err := s.arena.Acquire(ctx, review.TargetID)
		if err != nil {
			return nil, err
		}
		state.Reviews.Put(*review)
		release()
	}
	return review, nil
}

func (s *reviewService) AverageRating(ctx context.Context, kind models.TargetKind, targetID uint) (float64, error) {
	reviews, err := s.repo.FindByTarget(ctx, kind, targetID)
	if err != nil {
		return 0, persistErr("load reviews", err)
	}
	if len(reviews) == 0 {
		return 0, nil
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews)), nil
}
