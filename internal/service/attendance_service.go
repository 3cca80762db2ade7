package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

const (
	resourceEvent     = "event"
	msgNameRequired   = "name is required"
	msgAttendeeExists = "attendee already exists for this event"
)

// AttendanceService registers attendees against the event catalog.
type AttendanceService struct {
	catalog    repository.EventRepository
	attendees  repository.AttendeeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// AttendanceDependencies bundles collaborators for the attendance service.
// Clock and IDGenerator default to time.Now and uuid.NewString.
type AttendanceDependencies struct {
	EventRepo    repository.EventRepository
	AttendeeRepo repository.AttendeeRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Clock        func() time.Time
	IDGenerator  func() string
}

// RegistrationInput is the submitted registration payload. Nil fields were
// absent or null in the request.
type RegistrationInput struct {
	Name       *string
	Email      *string
	TicketType *string
}

// NewAttendanceService constructs the service.
func NewAttendanceService(deps AttendanceDependencies) *AttendanceService {
	s := &AttendanceService{
		catalog:    deps.EventRepo,
		attendees:  deps.AttendeeRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Clock,
		newID:      deps.IDGenerator,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// EnsureEvent fails with NotFound when eventID is not in the catalog.
func (s *AttendanceService) EnsureEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ev, err := s.catalog.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, apperrors.NewNotFound(resourceEvent)
		}
		return nil, err
	}
	return ev, nil
}

// RegisterAttendee validates input and stores a new attendee for eventID.
// The first failing check wins: unknown event, malformed payload, blank
// name, then an existing registration for the normalized email.
func (s *AttendanceService) RegisterAttendee(ctx context.Context, eventID string, input RegistrationInput) (*domain.Attendee, error) {
	event, err := s.EnsureEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.RegisterForEvent(ctx, event, input)
}

// RegisterForEvent is RegisterAttendee for an event already resolved by
// EnsureEvent; the catalog is not consulted again.
func (s *AttendanceService) RegisterForEvent(ctx context.Context, event *domain.Event, input RegistrationInput) (*domain.Attendee, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(*input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest(msgNameRequired)
	}

	email := domain.NormalizeEmail(*input.Email)

	ticketType := domain.DefaultTicketType
	if input.TicketType != nil {
		ticketType = *input.TicketType
	}

	ts := s.now().UTC()
	attendee := &domain.Attendee{
		ID:         s.newID(),
		EventID:    event.ID,
		Name:       name,
		Email:      email,
		TicketType: ticketType,
		Status:     domain.AttendeeStatusRegistered,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	if err := s.attendees.Create(ctx, attendee); err != nil {
		if errors.Is(err, repository.ErrAttendeeExists) {
			return nil, apperrors.NewConflict(msgAttendeeExists, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publishRegistered(ctx, attendee)
	return attendee, nil
}

// Validate checks the payload shape: name and email present, email
// syntactically valid once surrounding whitespace is removed.
func (in RegistrationInput) Validate() error {
	details := map[string]any{}
	if in.Name == nil {
		details["name"] = "field required"
	}
	switch {
	case in.Email == nil:
		details["email"] = "field required"
	case !IsValidEmail(strings.TrimSpace(*in.Email)):
		details["email"] = "invalid email format"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError(apperrors.MsgValidationError, details)
	}
	return nil
}

// IsValidEmail reports whether addr is a bare local@domain.tld address.
func IsValidEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Name != "" || parsed.Address != addr {
		return false
	}
	at := strings.LastIndex(addr, "@")
	if at <= 0 {
		return false
	}
	host := addr[at+1:]
	return strings.Contains(host, ".") &&
		!strings.HasPrefix(host, ".") &&
		!strings.HasSuffix(host, ".") &&
		!strings.Contains(host, "..")
}

func (s *AttendanceService) publishRegistered(ctx context.Context, attendee *domain.Attendee) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventAttendeeRegistered,
		EventID:    attendee.EventID,
		AttendeeID: attendee.ID,
		Timestamp:  attendee.CreatedAt,
		Payload: events.AttendeeRegisteredPayload{
			Name:       attendee.Name,
			Email:      attendee.Email,
			TicketType: attendee.TicketType,
		},
	})
	if err != nil {
		s.logger.Warn("attendee registered notification failed",
			zap.String("attendee_id", attendee.ID),
			zap.String("event_id", attendee.EventID),
			zap.Error(err))
	}
}
