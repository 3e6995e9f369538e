package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/repository"
	"gorm.io/gorm"
)

type TripService interface {
	Create(ctx context.Context, trip *models.Trip) error
	Get(ctx context.Context, id uint) (*models.Trip, error)
	List(ctx context.Context) ([]models.Trip, error)
	// Update rewrites the trip's mutable fields. Started trips are frozen;
	// shrinking a capacity below its current occupancy is rejected.
	Update(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	// Delete soft-deletes a not-yet-started trip and notifies every active
	// booker and assigned guide.
	Delete(ctx context.Context, id uint) error
}

type tripService struct {
	trips    repository.TripRepository
	arena    *Arena
	notifier NotificationService
	now      func() time.Time
}

func NewTripService(trips repository.TripRepository, arena *Arena, notifier NotificationService) TripService {
	return &tripService{
		trips:    trips,
		arena:    arena,
		notifier: notifier,
		now:      time.Now,
	}
}

func validateTrip(trip *models.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return validationErr("title is required")
	}
	if trip.Price < 0 {
		return validationErr("price must not be negative")
	}
	if trip.MinTravelers < 0 {
		return validationErr("min travelers must not be negative")
	}
	if trip.MinTravelers > trip.MaxTravelers {
		return validationErr("min travelers must not exceed max travelers")
	}
	if trip.MaxGuides < 0 {
		return validationErr("max guides must not be negative")
	}
	return nil
}

func (s *tripService) Create(ctx context.Context, trip *models.Trip) error {
	if err := validateTrip(trip); err != nil {
		return err
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return persistErr("create trip", err)
	}
	return nil
}

func (s *tripService) Get(ctx context.Context, id uint) (*models.Trip, error) {
	return s.findTrip(ctx, id)
}

func (s *tripService) List(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.trips.FindAll(ctx)
	if err != nil {
		return nil, persistErr("list trips", err)
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	return trips, nil
}

func (s *tripService) Update(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	existing, err := s.findTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if existing.Started(s.now()) {
		return nil, ErrTripAlreadyStarted
	}
	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	state, release, err := s.arena.Acquire(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if trip.MaxTravelers < state.Bookings.Size() {
		release()
		return nil, validationErr("max travelers is below current bookings")
	}
	if trip.MaxGuides < state.Assignments.Size() {
		release()
		return nil, validationErr("max guides is below current assignments")
	}

	existing.Title = trip.Title
	existing.Description = trip.Description
	existing.Price = trip.Price
	existing.Date = trip.Date
	existing.MinTravelers = trip.MinTravelers
	existing.MaxTravelers = trip.MaxTravelers
	existing.MaxGuides = trip.MaxGuides
	if err := s.trips.Update(ctx, existing); err != nil {
		release()
		return nil, persistErr("update trip", err)
	}
	release()
	return existing, nil
}

func (s *tripService) Delete(ctx context.Context, id uint) error {
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return err
	}
	if trip.Started(s.now()) {
		return ErrTripAlreadyStarted
	}

	state, release, err := s.arena.Acquire(ctx, id)
	if err != nil {
		return err
	}
	travelerIDs := state.Bookings.TravelerIDs()
	guideIDs := state.Assignments.GuideIDs()
	if err := s.trips.SoftDelete(ctx, id); err != nil {
		release()
		return persistErr("delete trip", err)
	}
	release()
	s.arena.Drop(id)

	text := fmt.Sprintf("Trip %q has been cancelled by the agency.", trip.Title)
	for _, travelerID := range travelerIDs {
		if _, err := s.notifier.Send(ctx, models.RecipientTraveler, travelerID, text); err != nil {
			return err
		}
	}
	for _, guideID := range guideIDs {
		if _, err := s.notifier.Send(ctx, models.RecipientGuide, guideID, text); err != nil {
			return err
		}
	}
	return nil
}

func (s *tripService) findTrip(ctx context.Context, id uint) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find trip", err)
	}
	return trip, nil
}
