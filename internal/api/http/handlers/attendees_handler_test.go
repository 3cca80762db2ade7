package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

func TestDecodeCreateAttendee_ExactKeys(t *testing.T) {
	req, err := decodeCreateAttendee(json.Unmarshal, []byte(`{"name":"Alice","email":"alice@example.com","ticketType":null}`))
	require.NoError(t, err)
	require.NotNil(t, req.Name)
	require.NotNil(t, req.Email)
	assert.Equal(t, "Alice", *req.Name)
	assert.Equal(t, "alice@example.com", *req.Email)
	assert.Nil(t, req.TicketType)

	req, err = decodeCreateAttendee(json.Unmarshal, []byte(`{"NAME":"Alice","Email":"alice@example.com","TicketType":"vip"}`))
	require.NoError(t, err)
	assert.Nil(t, req.Name)
	assert.Nil(t, req.Email)
	assert.Nil(t, req.TicketType)
}

func TestDecodeCreateAttendee_ShapeErrors(t *testing.T) {
	cases := []struct {
		body    string
		details map[string]any
	}{
		{`[1,2]`, map[string]any{"body": "must be a JSON object"}},
		{`{"name":`, map[string]any{"body": "invalid JSON"}},
		{`{"name":true,"email":"a@example.com","ticketType":{}}`, map[string]any{"name": "must be a string", "ticketType": "must be a string"}},
	}
	for _, tc := range cases {
		_, err := decodeCreateAttendee(json.Unmarshal, []byte(tc.body))
		var de *apperrors.DomainError
		require.True(t, errors.As(err, &de), tc.body)
		assert.Equal(t, apperrors.CodeBadRequest, de.Code, tc.body)
		assert.Equal(t, apperrors.MsgValidationError, de.Message, tc.body)
		assert.Equal(t, tc.details, de.Details, tc.body)
	}
}
