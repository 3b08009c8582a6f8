package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"car-market-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecordInteractionUseCase struct {
	got *domain.Interaction
	err error
}

func (s *stubRecordInteractionUseCase) Execute(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error) {
	s.got = interaction
	if s.err != nil {
		return nil, s.err
	}
	return interaction, nil
}

func TestRecordFeedback_OK(t *testing.T) {
	userID := uuid.New()
	stub := &stubRecordInteractionUseCase{}
	h := NewFeedbackHandler(stub)

	body := `{"vehicle_id": 42, "interaction_type": "view", "score": 0.8, "session_id": "sess-1"}`
	req := withAuthContext(httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body)), userID)
	rec := httptest.NewRecorder()
	h.RecordFeedback(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, stub.got)
	assert.Equal(t, userID, stub.got.UserID)
	assert.Equal(t, int64(42), stub.got.VehicleID)
	assert.Equal(t, domain.InteractionView, stub.got.Type)
	require.NotNil(t, stub.got.Score)
	assert.Equal(t, 0.8, *stub.got.Score)

	var resp FeedbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.VehicleID)
	assert.Equal(t, "view", resp.Type)
	assert.NotEmpty(t, resp.InteractionID)
}

func TestRecordFeedback_UnknownType(t *testing.T) {
	h := NewFeedbackHandler(&stubRecordInteractionUseCase{})

	body := `{"vehicle_id": 42, "interaction_type": "teleport"}`
	req := withAuthContext(httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	h.RecordFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "interaction_type")
}

func TestRecordFeedback_MissingVehicleID(t *testing.T) {
	h := NewFeedbackHandler(&stubRecordInteractionUseCase{})

	body := `{"interaction_type": "click"}`
	req := withAuthContext(httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	h.RecordFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordFeedback_WithoutAuth(t *testing.T) {
	h := NewFeedbackHandler(&stubRecordInteractionUseCase{})

	body := `{"vehicle_id": 42, "interaction_type": "view"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RecordFeedback(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordFeedback_BadBody(t *testing.T) {
	h := NewFeedbackHandler(&stubRecordInteractionUseCase{})

	req := withAuthContext(httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader("{broken")), uuid.New())
	rec := httptest.NewRecorder()
	h.RecordFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
