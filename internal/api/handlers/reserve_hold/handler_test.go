package reserve_hold

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/holds"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
)

type MockHoldService struct {
	mock.Mock
}

func (m *MockHoldService) Reserve(ctx context.Context, req *holds.ReserveRequest) (*domain.Hold, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hold), args.Error(1)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/holds", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	svc := new(MockHoldService)
	svc.On("Reserve", mock.Anything, mock.MatchedBy(func(req *holds.ReserveRequest) bool {
		return req.SessionID == "sess-1" && len(req.Dates) == 1 && req.Dates[0].Equal(day) && req.Quantity == 2
	})).Return(&domain.Hold{
		ID:        "6f1c2a4e-8a0b-4f2e-9d4c-1b2a3c4d5e6f",
		SessionID: "sess-1",
		Dates:     []time.Time{day},
		Quantity:  2,
		Status:    domain.HoldStatusTemporary,
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}, nil)

	rec := post(NewHandler(svc, logger.Nop()), `{"sessionId":"sess-1","dates":["2025-06-10"],"quantity":2}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body HoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"2025-06-10"}, body.Dates)
	assert.Equal(t, "temporary", body.Status)
	assert.Equal(t, "2025-06-01T12:15:00Z", body.ExpiresAt)
}

func TestHandle_CapacityConflict(t *testing.T) {
	svc := new(MockHoldService)
	svc.On("Reserve", mock.Anything, mock.Anything).Return(nil, holds.ErrCapacityConflict)

	rec := post(NewHandler(svc, logger.Nop()), `{"sessionId":"sess-1","dates":["2025-06-10"],"quantity":2}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing session", `{"dates":["2025-06-10"],"quantity":1}`},
		{"no dates", `{"sessionId":"s","dates":[],"quantity":1}`},
		{"bad date", `{"sessionId":"s","dates":["2025/06/10"],"quantity":1}`},
		{"too many animals", `{"sessionId":"s","dates":["2025-06-10"],"quantity":11}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockHoldService)

			rec := post(NewHandler(svc, logger.Nop()), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
		})
	}
}
