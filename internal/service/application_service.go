package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/repository"
	"gorm.io/gorm"
)

type ApplicationService interface {
	// Submit files a pending application. One application per (guide, trip),
	// regardless of status.
	Submit(ctx context.Context, cv string, guideID, tripID uint) (uint, error)
	// Withdraw deletes a pending application. Returns false when the guide
	// never applied; withdrawing a decided application is ErrInvalidState.
	Withdraw(ctx context.Context, guideID, tripID uint) (bool, error)
	// Decide moves a pending application to accepted or rejected. The
	// decision is terminal; deciding twice is ErrInvalidState. Acceptance
	// does not schedule the guide; that is AssignmentService's job.
	Decide(ctx context.Context, applicationID uint, accepted bool) error
}

type applicationService struct {
	applications repository.ApplicationRepository
	trips        repository.TripRepository
	guides       repository.GuideRepository
	arena        *Arena
	notifier     NotificationService
}

func NewApplicationService(
	applications repository.ApplicationRepository,
	trips repository.TripRepository,
	guides repository.GuideRepository,
	arena *Arena,
	notifier NotificationService,
) ApplicationService {
	return &applicationService{
		applications: applications,
		trips:        trips,
		guides:       guides,
		arena:        arena,
		notifier:     notifier,
	}
}

func (s *applicationService) Submit(ctx context.Context, cv string, guideID, tripID uint) (uint, error) {
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if _, err := s.guides.FindByID(ctx, guideID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, persistErr("find guide", err)
	}

	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if state.Applications.Has(guideID) {
		release()
		return 0, ErrDuplicateApplication
	}

	app := &models.Application{
		GuideID: guideID,
		TripID:  trip.ID,
		CV:      cv,
		Status:  models.ApplicationPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		release()
		return 0, persistErr("create application", err)
	}
	state.Applications.Put(*app)
	release()
	return app.ID, nil
}

func (s *applicationService) Withdraw(ctx context.Context, guideID, tripID uint) (bool, error) {
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return false, err
	}
	app, ok := state.Applications.Get(guideID)
	if !ok {
		release()
		return false, nil
	}
	if app.Status != models.ApplicationPending {
		release()
		return false, ErrInvalidState
	}

	if err := s.applications.Delete(ctx, app.ID); err != nil {
		release()
		return false, persistErr("delete application", err)
	}
	state.Applications.Remove(guideID)
	release()

	text := fmt.Sprintf("Your application for trip %d has been withdrawn.", tripID)
	if _, err := s.notifier.Send(ctx, models.RecipientGuide, guideID, text); err != nil {
		// The application is already deleted; report that alongside the error.
		return true, err
	}
	return true, nil
}

func (s *applicationService) Decide(ctx context.Context, applicationID uint, accepted bool) error {
	stored, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistErr("find application", err)
	}

	state, release, err := s.arena.Acquire(ctx, stored.TripID)
	if err != nil {
		return err
	}
	app, ok := state.Applications.Get(stored.GuideID)
	if !ok {
		// Withdrawn between the lookup and the lock.
		release()
		return ErrNotFound
	}
	if app.Status != models.ApplicationPending {
		release()
		return ErrInvalidState
	}

	status := models.ApplicationRejected
	if accepted {
		status = models.ApplicationAccepted
	}
	if err := s.applications.UpdateStatus(ctx, app.ID, status); err != nil {
		release()
		return persistErr("update application status", err)
	}
	app.Status = status
	state.Applications.Put(app)
	release()

	text := fmt.Sprintf("Your application for trip %d has been rejected.", app.TripID)
	if accepted {
		text = fmt.Sprintf("Your application for trip %d has been accepted.", app.TripID)
	}
	if _, err := s.notifier.Send(ctx, models.RecipientGuide, app.GuideID, text); err != nil {
		return err
	}
	return nil
}

func (s *applicationService) findTrip(ctx context.Context, tripID uint) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find trip", err)
	}
	return trip, nil
}
