package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/service"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

// AttendeesHandler exposes attendee registration.
type AttendeesHandler struct {
	service *service.AttendanceService
}

// NewAttendeesHandler constructs handler.
func NewAttendeesHandler(attendanceService *service.AttendanceService) *AttendeesHandler {
	return &AttendeesHandler{service: attendanceService}
}

// Create POST /events/:eventId/attendees.
func (h *AttendeesHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	// An unknown event is reported even when the body is malformed.
	event, err := h.service.EnsureEvent(ctx, c.Params("eventId"))
	if err != nil {
		return err
	}

	req, err := decodeCreateAttendee(c.App().Config().JSONDecoder, c.Body())
	if err != nil {
		return err
	}

	attendee, err := h.service.RegisterForEvent(ctx, event, service.RegistrationInput{
		Name:       req.Name,
		Email:      req.Email,
		TicketType: req.TicketType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ToAttendeeResponse(attendee))
}

// decodeCreateAttendee reads the body as a JSON object and picks fields by
// exact key; "NAME" does not populate name. Present fields must be strings
// or null.
func decodeCreateAttendee(unmarshal func([]byte, any) error, body []byte) (dto.CreateAttendeeRequest, error) {
	var req dto.CreateAttendeeRequest

	var fields map[string]json.RawMessage
	if err := unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return req, apperrors.NewValidationError(apperrors.MsgValidationError, map[string]any{"body": "must be a JSON object"})
		}
		return req, apperrors.NewValidationError(apperrors.MsgValidationError, map[string]any{"body": "invalid JSON"})
	}

	targets := []struct {
		key string
		dst **string
	}{
		{"name", &req.Name},
		{"email", &req.Email},
		{"ticketType", &req.TicketType},
	}
	details := map[string]any{}
	for _, target := range targets {
		raw, ok := fields[target.key]
		if !ok {
			continue
		}
		if err := unmarshal(raw, target.dst); err != nil {
			details[target.key] = "must be a string"
		}
	}
	if len(details) > 0 {
		return req, apperrors.NewValidationError(apperrors.MsgValidationError, details)
	}
	return req, nil
}
