package confirm_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Confirm(ctx context.Context, id int64) (*models.ConfirmBookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfirmBookingResponse), args.Error(1)
}

func confirm(svc BookingService, id string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/confirm", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+id+"/confirm", nil))
	return rec
}

func TestHandle_Confirmed(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Confirm", mock.Anything, int64(42)).Return(&models.ConfirmBookingResponse{
		Booking:     &models.BookingResponse{ID: 42, Status: "confirmed", PaymentStatus: "paid"},
		CancelToken: "signed-token",
	}, nil)

	rec := confirm(svc, "42")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ConfirmBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed-token", body.CancelToken)
	assert.Equal(t, "confirmed", body.Booking.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   domain.ErrorKind
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound, domain.KindNotFound},
		{"not pending", domain.NewInvalidTransitionError(domain.StatusConfirmed, domain.StatusConfirmed), http.StatusConflict, domain.KindInvalidStateTransition},
		{"capture failed", fmt.Errorf("%w: card declined", bookings.ErrPaymentCaptureFailed), http.StatusPaymentRequired, domain.KindPaymentCaptureFailed},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError, domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("Confirm", mock.Anything, int64(9)).Return(nil, tt.err)

			rec := confirm(svc, "9")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
