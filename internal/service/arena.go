package service

import (
	"context"

	"github.com/Supanida/trip-agency-service/internal/models"
	"github.com/Supanida/trip-agency-service/internal/registry"
	"github.com/Supanida/trip-agency-service/internal/repository"
)

// Arena hands out per-trip register state with the trip's lock held,
// hydrating the registers from storage on first touch. Every engine goes
// through Acquire for its capacity-check-then-mutate sequences; the
// registers are the single source of truth for capacity once loaded.
type Arena struct {
	trips        *registry.Registry
	bookings     repository.BookingRepository
	assignments  repository.AssignmentRepository
	applications repository.ApplicationRepository
	reviews      repository.ReviewRepository
}

func NewArena(
	bookings repository.BookingRepository,
	assignments repository.AssignmentRepository,
	applications repository.ApplicationRepository,
	reviews repository.ReviewRepository,
) *Arena {
	return &Arena{
		trips:        registry.New(),
		bookings:     bookings,
		assignments:  assignments,
		applications: applications,
		reviews:      reviews,
	}
}

// Acquire returns the trip's state with its mutex held. The caller must
// call release exactly once, after its last register mutation.
func (a *Arena) Acquire(ctx context.Context, tripID uint) (*registry.TripState, func(), error) {
	state, release := a.trips.Acquire(tripID)
	if state.Loaded() {
		return state, release, nil
	}
	if err := a.hydrate(ctx, tripID, state); err != nil {
		release()
		return nil, nil, err
	}
	state.MarkLoaded()
	return state, release, nil
}

// Drop evicts a trip's state after a soft delete.
func (a *Arena) Drop(tripID uint) {
	a.trips.Drop(tripID)
}

func (a *Arena) hydrate(ctx context.Context, tripID uint, state *registry.TripState) error {
	bookings, err := a.bookings.FindActiveByTrip(ctx, tripID)
	if err != nil {
		return persistErr("load bookings", err)
	}
	for _, b := range bookings {
		state.Bookings.Add(b.TravelerID, b.ID)
	}

	assignments, err := a.assignments.FindByTrip(ctx, tripID)
	if err != nil {
		return persistErr("load assignments", err)
	}
	for _, asg := range assignments {
		state.Assignments.Add(asg.GuideID, asg.ID)
	}

	applications, err := a.applications.FindByTrip(ctx, tripID)
	if err != nil {
		return persistErr("load applications", err)
	}
	for _, app := range applications {
		state.Applications.Put(app)
	}

	reviews, err := a.reviews.FindByTarget(ctx, models.TargetTrip, tripID)
	if err != nil {
		return persistErr("load reviews", err)
	}
	for _, review := range reviews {
		state.Reviews.Put(review)
	}
	return nil
}
