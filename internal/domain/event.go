package domain

// Event is an immutable catalog entry attendees register against.
type Event struct {
	ID   string
	Name string
}
