// Package registry holds the in-memory state the services synchronize on.
// Each trip owns four registers (bookings, assignments, applications,
// reviews) behind one mutex; every capacity-check-then-mutate sequence runs
// with that mutex held, so two concurrent bookings can never both see the
// last free seat. Different trips lock independently and mutate in parallel.
package registry

import (
	"sync"

	"github.com/Supanida/trip-agency-service/internal/models"
)

// TripState is the unit of shared mutable state for one trip.
type TripState struct {
	mu     sync.Mutex
	loaded bool

	Bookings     *BookingRegister
	Assignments  *AssignmentRegister
	Applications *ApplicationRegister
	Reviews      *ReviewRegister
}

func newTripState() *TripState {
	return &TripState{
		Bookings:     newBookingRegister(),
		Assignments:  newAssignmentRegister(),
		Applications: newApplicationRegister(),
		Reviews:      newReviewRegister(),
	}
}

// Loaded reports whether the registers have been hydrated from storage.
// Only meaningful while the state is held via Acquire.
func (s *TripState) Loaded() bool { return s.loaded }

// MarkLoaded records that hydration is complete.
func (s *TripState) MarkLoaded() { s.loaded = true }

// Registry is the arena mapping trip IDs to their state. The outer lock
// only guards the map; per-trip work holds the trip's own mutex.
type Registry struct {
	mu    sync.RWMutex
	trips map[uint]*TripState
}

func New() *Registry {
	return &Registry{trips: make(map[uint]*TripState)}
}

// Acquire returns the state for tripID with its mutex held. The caller must
// invoke the release func exactly once, after its last register mutation and
// before dispatching notifications.
func (r *Registry) Acquire(tripID uint) (*TripState, func()) {
	r.mu.Lock()
	state, ok := r.trips[tripID]
	if !ok {
		state = newTripState()
		r.trips[tripID] = state
	}
	r.mu.Unlock()

	state.mu.Lock()
	return state, state.mu.Unlock
}

// Drop removes a trip's state, e.g. after a soft delete.
func (r *Registry) Drop(tripID uint) {
	r.mu.Lock()
	delete(r.trips, tripID)
	r.mu.Unlock()
}

type recipientKey struct {
	kind models.RecipientKind
	id   uint
}

// RecipientState is one recipient's notification register behind a mutex.
type RecipientState struct {
	mu     sync.Mutex
	loaded bool

	Notifications *NotificationRegister
}

func (s *RecipientState) Loaded() bool { return s.loaded }
func (s *RecipientState) MarkLoaded()  { s.loaded = true }

// RecipientRegistry is the arena for notification registers, keyed by
// (recipient kind, recipient ID).
type RecipientRegistry struct {
	mu         sync.RWMutex
	recipients map[recipientKey]*RecipientState
}

func NewRecipients() *RecipientRegistry {
	return &RecipientRegistry{recipients: make(map[recipientKey]*RecipientState)}
}

func (r *RecipientRegistry) Acquire(kind models.RecipientKind, recipientID uint) (*RecipientState, func()) {
	key := recipientKey{kind: kind, id: recipientID}

	r.mu.Lock()
	state, ok := r.recipients[key]
	if !ok {
		state = &RecipientState{Notifications: newNotificationRegister()}
		r.recipients[key] = state
	}
	r.mu.Unlock()

	state.mu.Lock()
	return state, state.mu.Unlock
}
