package domain

import (
	"strings"
	"time"
)

// AttendeeStatus enumerates lifecycle states for an attendee.
type AttendeeStatus string

const (
	AttendeeStatusRegistered AttendeeStatus = "registered"
)

// DefaultTicketType applies when a registration omits the ticket type.
const DefaultTicketType = "standard"

// Attendee binds a person to an event.
type Attendee struct {
	ID         string
	EventID    string
	Name       string
	Email      string
	TicketType string
	Status     AttendeeStatus
	CheckInAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
