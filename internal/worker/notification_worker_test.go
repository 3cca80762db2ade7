package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/service"
)

type countingPublisher struct{ n int }

func (p *countingPublisher) Enabled() bool { return true }

func (p *countingPublisher) Publish(context.Context, string, []byte) error {
	p.n++
	return nil
}

func TestStartNotificationWorker(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	pub := &countingPublisher{}
	svc := service.NewNotificationService(dispatcher, zap.NewNop(),
		service.NotificationSink{Name: "test", Topic: "attendees", Publisher: pub})

	StartNotificationWorker(svc)
	StartNotificationWorker(nil)

	assert.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventAttendeeRegistered}))
	assert.Equal(t, 1, pub.n)
}
