package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/events"
)

type recordingPublisher struct {
	enabled bool
	err     error
	topics  []string
	bodies  [][]byte
}

func (p *recordingPublisher) Enabled() bool { return p.enabled }

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	p.topics = append(p.topics, topic)
	p.bodies = append(p.bodies, payload)
	return p.err
}

func registeredEvent() events.Event {
	return events.Event{
		ID:         "evt-1",
		Type:       events.EventAttendeeRegistered,
		EventID:    "e1",
		AttendeeID: "att-1",
		Timestamp:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Payload:    events.AttendeeRegisteredPayload{Name: "Alice", Email: "alice@example.com", TicketType: "standard"},
	}
}

func TestNotificationService_ForwardsToEnabledSinks(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	redisSink := &recordingPublisher{enabled: true}
	rabbitSink := &recordingPublisher{enabled: true}
	disabled := &recordingPublisher{enabled: false}

	svc := NewNotificationService(dispatcher, zap.NewNop(),
		NotificationSink{Name: "redis", Topic: "attendees.registered", Publisher: redisSink},
		NotificationSink{Name: "rabbitmq", Topic: "attendee.registered", Publisher: rabbitSink},
		NotificationSink{Name: "off", Topic: "x", Publisher: disabled},
	)
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), registeredEvent()))

	assert.Equal(t, []string{"attendees.registered"}, redisSink.topics)
	assert.Equal(t, []string{"attendee.registered"}, rabbitSink.topics)
	assert.Empty(t, disabled.topics)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(redisSink.bodies[0], &decoded))
	assert.Equal(t, "attendee_registered", decoded["type"])
	assert.Equal(t, "att-1", decoded["attendeeId"])
	assert.Equal(t, "alice@example.com", decoded["payload"].(map[string]any)["email"])
}

func TestNotificationService_SinkFailureDoesNotStopOthers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	broken := &recordingPublisher{enabled: true, err: errors.New("connection refused")}
	healthy := &recordingPublisher{enabled: true}

	svc := NewNotificationService(dispatcher, zap.NewNop(),
		NotificationSink{Name: "redis", Topic: "a", Publisher: broken},
		NotificationSink{Name: "rabbitmq", Topic: "b", Publisher: healthy},
	)
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), registeredEvent())
	assert.ErrorContains(t, err, "redis publish: connection refused")
	assert.Len(t, healthy.topics, 1)
}

func TestNotificationService_NoSinks(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.NewNop()).RegisterHandlers()
	assert.NoError(t, dispatcher.Publish(context.Background(), registeredEvent()))
}
