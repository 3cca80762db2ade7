package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_InvokesAllHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventAttendeeRegistered, func(_ context.Context, ev Event) error {
		calls = append(calls, "first:"+ev.AttendeeID)
		return errors.New("sink down")
	})
	d.Subscribe(EventAttendeeRegistered, func(_ context.Context, ev Event) error {
		calls = append(calls, "second:"+ev.AttendeeID)
		return nil
	})
	d.Subscribe(EventType("other"), func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventAttendeeRegistered, AttendeeID: "a1"})

	assert.ErrorContains(t, err, "sink down")
	assert.Equal(t, []string{"first:a1", "second:a1"}, calls)
}

func TestDispatcher_NoListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventAttendeeRegistered}))
}
