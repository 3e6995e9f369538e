package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/repository"
	"gorm.io/gorm"
)

type AssignmentService interface {
	// AssignBestGuides fills the trip's open guide slots from its accepted
	// applications, highest average rating first (submission order breaks
	// ties). Greedy and per-trip; returns how many guides were assigned.
	AssignBestGuides(ctx context.Context, tripID uint) (int, error)
	// AssignGuide schedules one guide explicitly.
	AssignGuide(ctx context.Context, guideID, tripID uint) error
	// RemoveGuide unschedules a guide. Returns false when no assignment exists.
	RemoveGuide(ctx context.Context, guideID, tripID uint) (bool, error)
	IsAssigned(ctx context.Context, guideID, tripID uint) (bool, error)
	// OpenSlots reports the remaining guide capacity.
	OpenSlots(ctx context.Context, tripID uint) (int, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	trips       repository.TripRepository
	guides      repository.GuideRepository
	arena       *Arena
	notifier    NotificationService
	reviews     ReviewService
	now         func() time.Time
}

func NewAssignmentService(
	assignments repository.AssignmentRepository,
	trips repository.TripRepository,
	guides repository.GuideRepository,
	arena *Arena,
	notifier NotificationService,
	reviews ReviewService,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		trips:       trips,
		guides:      guides,
		arena:       arena,
		notifier:    notifier,
		reviews:     reviews,
		now:         time.Now,
	}
}

func (s *assignmentService) AssignBestGuides(ctx context.Context, tripID uint) (int, error) {
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return 0, err
	}
	// Read the limit under the lock so the fill count cannot be based on
	// a capacity a concurrent trip update has already shrunk.
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		release()
		return 0, err
	}
	remaining := trip.MaxGuides - state.Assignments.Size()
	if remaining <= 0 {
		release()
		return 0, nil
	}

	type candidate struct {
		app    models.Application
		rating float64
	}
	var candidates []candidate
	for _, app := range state.Applications.Accepted() {
		if state.Assignments.Has(app.GuideID) {
			continue
		}
		rating, err := s.reviews.AverageRating(ctx, models.TargetGuide, app.GuideID)
		if err != nil {
			release()
			return 0, err
		}
		candidates = append(candidates, candidate{app: app, rating: rating})
	}
	// Accepted() already orders by submission time; a stable sort on rating
	// keeps that order as the tie-break.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rating > candidates[j].rating
	})
	if len(candidates) > remaining {
		candidates = candidates[:remaining]
	}

	assigned := make([]uint, 0, len(candidates))
	for _, c := range candidates {
		assignment := &models.Assignment{
			GuideID:    c.app.GuideID,
			TripID:     tripID,
			AssignedAt: s.now(),
		}
		if err := s.assignments.Create(ctx, assignment); err != nil {
			release()
			err = persistErr("create assignment", err)
			if notifyErr := s.notifyAssigned(ctx, tripID, assigned); notifyErr != nil {
				err = errors.Join(err, notifyErr)
			}
			return len(assigned), err
		}
		state.Assignments.Add(c.app.GuideID, assignment.ID)
		assigned = append(assigned, c.app.GuideID)
	}
	release()

	if err := s.notifyAssigned(ctx, tripID, assigned); err != nil {
		return len(assigned), err
	}
	return len(assigned), nil
}

func (s *assignmentService) AssignGuide(ctx context.Context, guideID, tripID uint) error {
	if _, err := s.guides.FindByID(ctx, guideID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistErr("find guide", err)
	}

	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return err
	}
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		release()
		return err
	}
	if state.Assignments.Has(guideID) {
		release()
		return ErrAlreadyAssigned
	}
	if state.Assignments.Size() >= trip.MaxGuides {
		release()
		return ErrCapacityExceeded
	}

	assignment := &models.Assignment{
		GuideID:    guideID,
		TripID:     tripID,
		AssignedAt: s.now(),
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		release()
		return persistErr("create assignment", err)
	}
	state.Assignments.Add(guideID, assignment.ID)
	release()

	return s.notifyAssigned(ctx, tripID, []uint{guideID})
}

func (s *assignmentService) RemoveGuide(ctx context.Context, guideID, tripID uint) (bool, error) {
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return false, err
	}
	assignmentID, ok := state.Assignments.AssignmentID(guideID)
	if !ok {
		release()
		return false, nil
	}
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		release()
		return false, persistErr("delete assignment", err)
	}
	state.Assignments.Remove(guideID)
	release()

	text := fmt.Sprintf("You have been removed from trip %d.", tripID)
	if _, err := s.notifier.Send(ctx, models.RecipientGuide, guideID, text); err != nil {
		// The assignment is already gone; report that alongside the error.
		return true, err
	}
	return true, nil
}

func (s *assignmentService) IsAssigned(ctx context.Context, guideID, tripID uint) (bool, error) {
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return false, err
	}
	defer release()
	return state.Assignments.Has(guideID), nil
}

func (s *assignmentService) OpenSlots(ctx context.Context, tripID uint) (int, error) {
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return 0, err
	}
	defer release()
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return 0, err
	}
	slots := trip.MaxGuides - state.Assignments.Size()
	if slots < 0 {
		slots = 0
	}
	return slots, nil
}

func (s *assignmentService) notifyAssigned(ctx context.Context, tripID uint, guideIDs []uint) error {
	for _, guideID := range guideIDs {
		text := fmt.Sprintf("You have been assigned to guide trip %d.", tripID)
		if _, err := s.notifier.Send(ctx, models.RecipientGuide, guideID, text); err != nil {
			return err
		}
	}
	return nil
}

func (s *assignmentService) findTrip(ctx context.Context, tripID uint) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find trip", err)
	}
	return trip, nil
}
