package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// ErrEventNotFound is returned when the catalog has no event with the given id.
var ErrEventNotFound = errors.New("event not found")

// DefaultEvents is the catalog used when no database supplies one.
var DefaultEvents = []domain.Event{
	{ID: "e1", Name: "Sample Event"},
}

// EventRepository provides read access to the event catalog.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

type eventCatalog struct {
	byID  map[string]domain.Event
	order []string
}

// NewEventCatalog returns an immutable in-memory catalog seeded with events.
// Later duplicates of an id are ignored.
func NewEventCatalog(events []domain.Event) EventRepository {
	c := &eventCatalog{byID: make(map[string]domain.Event, len(events))}
	for _, ev := range events {
		if _, exists := c.byID[ev.ID]; exists {
			continue
		}
		c.byID[ev.ID] = ev
		c.order = append(c.order, ev.ID)
	}
	return c
}

func (c *eventCatalog) GetByID(_ context.Context, id string) (*domain.Event, error) {
	ev, ok := c.byID[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &ev, nil
}

func (c *eventCatalog) List(_ context.Context) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

// Querier is the subset of pgxpool.Pool used to read the catalog.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadEventCatalog reads every row of the events table once. Callers build
// the in-memory catalog from the result; the table is not consulted again.
func LoadEventCatalog(ctx context.Context, db Querier) ([]domain.Event, error) {
	const query = `SELECT id, name FROM events`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		if err := rows.Scan(&ev.ID, &ev.Name); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}
