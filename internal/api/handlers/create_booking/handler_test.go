package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	createBooking "github.com/m04kA/PetBoarding-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{
	"sessionId": "sess-1",
	"serviceId": "sejour",
	"startDate": "2025-06-10",
	"endDate": "2025-06-12",
	"quantity": 1,
	"animals": [{"name": "Rex", "size": "large"}],
	"contact": {"name": "Marie", "email": "marie@example.com"}
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ServiceID == domain.ServiceSejour &&
			req.StartDate.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) &&
			len(req.Animals) == 1 && req.Animals[0].Size == domain.SizeLarge &&
			req.Contact.Email == "marie@example.com"
	})).Return(&createBooking.Response{
		ID:            11,
		ServiceID:     domain.ServiceSejour,
		StartDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Quantity:      1,
		Days:          3,
		RatePerUnit:   47.5,
		Total:         142.5,
		Status:        "pending",
		PaymentStatus: "unpaid",
	}, nil)

	rec := post(NewHandler(uc, logger.Nop()), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.ID)
	assert.Equal(t, "2025-06-12", body.EndDate)
	assert.Equal(t, 142.5, body.Total)
	uc.AssertExpectations(t)
}

func TestHandle_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown field", `{"serviceId":"sejour","foo":1}`},
		{"bad email", strings.Replace(validBody, "marie@example.com", "not-an-email", 1)},
		{"bad date", strings.Replace(validBody, "2025-06-10", "10/06/2025", 1)},
		{"zero quantity", strings.Replace(validBody, `"quantity": 1`, `"quantity": 0`, 1)},
		{"unknown size", strings.Replace(validBody, `"large"`, `"huge"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)

			rec := post(NewHandler(uc, logger.Nop()), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   domain.ErrorKind
	}{
		{"capacity conflict", fmt.Errorf("%w: 2025-06-11", createBooking.ErrCapacityConflict), http.StatusConflict, domain.KindCapacityConflict},
		{"too late", createBooking.ErrTooLateToBook, http.StatusBadRequest, domain.KindValidation},
		{"invalid", fmt.Errorf("%w: flash without times", createBooking.ErrInvalidInput), http.StatusBadRequest, domain.KindValidation},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(NewHandler(uc, logger.Nop()), validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandle_TrimsPaddedContact(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.Contact.Email == "Marie@Example.com" && req.Contact.Name == "Marie"
	})).Return(&createBooking.Response{
		ID:            12,
		ServiceID:     domain.ServiceSejour,
		StartDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Status:        "pending",
		PaymentStatus: "unpaid",
	}, nil)

	body := strings.Replace(validBody,
		`{"name": "Marie", "email": "marie@example.com"}`,
		`{"name": " Marie ", "email": " Marie@Example.com "}`, 1)
	rec := post(NewHandler(uc, logger.Nop()), body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}
