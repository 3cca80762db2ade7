package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/events"
)

// Publisher delivers a serialized notification to an external system.
type Publisher interface {
	Enabled() bool
	Publish(ctx context.Context, topic string, payload []byte) error
}

// NotificationSink names a publisher and the topic (channel or routing key)
// notifications are sent under.
type NotificationSink struct {
	Name      string
	Topic     string
	Publisher Publisher
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sinks      []NotificationSink
}

// NewNotificationService creates the service. Sinks whose publisher is
// disabled are dropped.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, sinks ...NotificationSink) *NotificationService {
	active := make([]NotificationSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink.Publisher == nil || !sink.Publisher.Enabled() {
			continue
		}
		active = append(active, sink)
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		sinks:      active,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAttendeeRegistered, n.handleAttendeeRegistered)
}

func (n *NotificationService) handleAttendeeRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("AttendeeRegistered",
		zap.String("event_id", event.EventID),
		zap.String("attendee_id", event.AttendeeID))
	return n.forward(ctx, event)
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	if len(n.sinks) == 0 {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.Type, err)
	}

	var firstErr error
	for _, sink := range n.sinks {
		if err := sink.Publisher.Publish(ctx, sink.Topic, body); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s publish: %w", sink.Name, err)
			}
			continue
		}
		n.logger.Debug("notification published",
			zap.String("sink", sink.Name),
			zap.String("topic", sink.Topic),
			zap.String("attendee_id", event.AttendeeID))
	}
	return firstErr
}
