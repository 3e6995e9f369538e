package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/repository"
	"gorm.io/gorm"
)

type BookingService interface {
	// Book reserves a seat. Returns false without error when the trip is
	// full or the traveler already holds an active booking.
	Book(ctx context.Context, travelerID, tripID uint) (bool, error)
	// Cancel releases a seat. Returns false when there is nothing to
	// cancel; cancelling after departure is ErrTripAlreadyStarted.
	Cancel(ctx context.Context, travelerID, tripID uint) (bool, error)
	AvailableSpots(ctx context.Context, tripID uint) (int, error)
	HasMinimumParticipants(ctx context.Context, tripID uint) (bool, error)
	IsFull(ctx context.Context, tripID uint) (bool, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	trips     repository.TripRepository
	travelers repository.TravelerRepository
	arena     *Arena
	notifier  NotificationService
	now       func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	trips repository.TripRepository,
	travelers repository.TravelerRepository,
	arena *Arena,
	notifier NotificationService,
) BookingService {
	return &bookingService{
		bookings:  bookings,
		trips:     trips,
		travelers: travelers,
		arena:     arena,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (s *bookingService) Book(ctx context.Context, travelerID, tripID uint) (bool, error) {
	if _, err := s.travelers.FindByID(ctx, travelerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, persistErr("find traveler", err)
	}

	// Capacity check and register mutation stay atomic under the trip
	// lock; two concurrent calls cannot both take the last seat. The trip
	// row is read under the same lock, so a capacity shrink committed by
	// a concurrent update cannot leave this check with a stale limit.
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return false, err
	}
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		release()
		return false, err
	}
	if state.Bookings.Has(travelerID) {
		release()
		return false, nil
	}
	if trip.MaxTravelers-state.Bookings.Size() <= 0 {
		release()
		return false, nil
	}

	booking := &models.Booking{
		TravelerID: travelerID,
		TripID:     tripID,
		BookedAt:   s.now(),
		Active:     true,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		release()
		return false, persistErr("create booking", err)
	}
	state.Bookings.Add(travelerID, booking.ID)
	release()

	text := fmt.Sprintf("Your booking for %q is confirmed.", trip.Title)
	if _, err := s.notifier.Send(ctx, models.RecipientTraveler, travelerID, text); err != nil {
		return true, err
	}
	return true, nil
}

func (s *bookingService) Cancel(ctx context.Context, travelerID, tripID uint) (bool, error) {
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return false, err
	}
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		release()
		return false, err
	}
	bookingID, ok := state.Bookings.BookingID(travelerID)
	if !ok {
		release()
		return false, nil
	}
	if trip.Started(s.now()) {
		release()
		return false, ErrTripAlreadyStarted
	}

	if err := s.bookings.Deactivate(ctx, bookingID); err != nil {
		release()
		return false, persistErr("deactivate booking", err)
	}
	state.Bookings.Remove(travelerID)
	release()

	text := fmt.Sprintf("Your booking for %q has been cancelled.", trip.Title)
	if _, err := s.notifier.Send(ctx, models.RecipientTraveler, travelerID, text); err != nil {
		return true, err
	}
	return true, nil
}

func (s *bookingService) AvailableSpots(ctx context.Context, tripID uint) (int, error) {
	trip, size, err := s.occupancy(ctx, tripID)
	if err != nil {
		return 0, err
	}
	spots := trip.MaxTravelers - size
	if spots < 0 {
		spots = 0
	}
	return spots, nil
}

func (s *bookingService) HasMinimumParticipants(ctx context.Context, tripID uint) (bool, error) {
	trip, size, err := s.occupancy(ctx, tripID)
	if err != nil {
		return false, err
	}
	return size >= trip.MinTravelers, nil
}

func (s *bookingService) IsFull(ctx context.Context, tripID uint) (bool, error) {
	trip, size, err := s.occupancy(ctx, tripID)
	if err != nil {
		return false, err
	}
	return size >= trip.MaxTravelers, nil
}

func (s *bookingService) occupancy(ctx context.Context, tripID uint) (*models.Trip, int, error) {
	state, release, err := s.arena.Acquire(ctx, tripID)
	if err != nil {
		return nil, 0, err
	}
	defer release()
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, 0, err
	}
	return trip, state.Bookings.Size(), nil
}

func (s *bookingService) findTrip(ctx context.Context, tripID uint) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistErr("find trip", err)
	}
	return trip, nil
}
