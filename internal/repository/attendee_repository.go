package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/attendance-service/internal/domain"
)

var (
	// ErrAttendeeExists is returned when (event, email) is already registered.
	ErrAttendeeExists = errors.New("attendee already exists for this event")
	// ErrAttendeeNotFound is returned by lookups that match nothing.
	ErrAttendeeNotFound = errors.New("attendee not found")
)

// AttendeeRepository defines storage for attendee records.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *domain.Attendee) error
	GetByID(ctx context.Context, id string) (*domain.Attendee, error)
	GetByEventEmail(ctx context.Context, eventID, email string) (*domain.Attendee, error)
	Count(ctx context.Context) int
}

type eventEmailKey struct {
	eventID string
	email   string
}

// memoryAttendeeRepository keeps two indexes over the same records. Both are
// written under one lock so a record is either in both or in neither.
type memoryAttendeeRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Attendee
	byEmail map[eventEmailKey]*domain.Attendee
}

// NewMemoryAttendeeRepository returns an empty process-local store.
func NewMemoryAttendeeRepository() AttendeeRepository {
	return &memoryAttendeeRepository{
		byID:    make(map[string]*domain.Attendee),
		byEmail: make(map[eventEmailKey]*domain.Attendee),
	}
}

// Create inserts the attendee unless its (EventID, Email) pair is taken.
// Email must already be normalized.
func (r *memoryAttendeeRepository) Create(_ context.Context, attendee *domain.Attendee) error {
	key := eventEmailKey{eventID: attendee.EventID, email: attendee.Email}
	stored := *attendee

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return ErrAttendeeExists
	}
	r.byEmail[key] = &stored
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memoryAttendeeRepository) GetByID(_ context.Context, id string) (*domain.Attendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	att, ok := r.byID[id]
	if !ok {
		return nil, ErrAttendeeNotFound
	}
	out := *att
	return &out, nil
}

func (r *memoryAttendeeRepository) GetByEventEmail(_ context.Context, eventID, email string) (*domain.Attendee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	att, ok := r.byEmail[eventEmailKey{eventID: eventID, email: email}]
	if !ok {
		return nil, ErrAttendeeNotFound
	}
	out := *att
	return &out, nil
}

func (r *memoryAttendeeRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
