package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAttendeeRegistered EventType = "attendee_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EventID    string      `json:"eventId"`
	AttendeeID string      `json:"attendeeId"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// AttendeeRegisteredPayload payload.
type AttendeeRegisteredPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	TicketType string `json:"ticketType"`
}
