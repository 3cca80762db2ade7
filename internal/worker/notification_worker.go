package worker

import (
	"github.com/spec-kit/attendance-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to registration events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
