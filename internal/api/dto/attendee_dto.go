package dto

import (
	"time"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// TimestampLayout renders UTC instants with microseconds and a literal Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// CreateAttendeeRequest payload. Pointer fields distinguish absent/null from empty.
type CreateAttendeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	TicketType *string `json:"ticketType"`
}

// AttendeeResponse is the public attendee representation.
type AttendeeResponse struct {
	ID         string                `json:"id"`
	EventID    string                `json:"eventId"`
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	TicketType string                `json:"ticketType"`
	Status     domain.AttendeeStatus `json:"status"`
	CheckInAt  *string               `json:"checkInAt"`
	CreatedAt  string                `json:"createdAt"`
	UpdatedAt  string                `json:"updatedAt"`
}

// ToAttendeeResponse maps the domain record to its response shape.
func ToAttendeeResponse(a *domain.Attendee) AttendeeResponse {
	resp := AttendeeResponse{
		ID:         a.ID,
		EventID:    a.EventID,
		Name:       a.Name,
		Email:      a.Email,
		TicketType: a.TicketType,
		Status:     a.Status,
		CreatedAt:  FormatTimestamp(a.CreatedAt),
		UpdatedAt:  FormatTimestamp(a.UpdatedAt),
	}
	if a.CheckInAt != nil {
		checkIn := FormatTimestamp(*a.CheckInAt)
		resp.CheckInAt = &checkIn
	}
	return resp
}

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
