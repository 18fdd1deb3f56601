package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/api/middleware"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

const adminKey = "admin-secret"

func newRouter(svc BookingService) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.DetectAdmin(adminKey))
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPost)
	return router
}

func doCancel(router http.Handler, id, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+id+"/cancel", strings.NewReader(body))
	if admin {
		req.Header.Set(middleware.AdminKeyHeader, adminKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CustomerWithToken(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Cancel", mock.Anything, int64(42), mock.MatchedBy(func(req *models.CancelBookingRequest) bool {
		return req.Token != nil && *req.Token == "tok"
	})).Return(&models.BookingResponse{ID: 42, Status: "cancelled"}, nil)

	rec := doCancel(newRouter(svc), "42", `{"token":"tok"}`, false)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)
	svc.AssertExpectations(t)
}

func TestHandle_AdminWithoutToken(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Cancel", mock.Anything, int64(42), mock.MatchedBy(func(req *models.CancelBookingRequest) bool {
		return req.Token == nil
	})).Return(&models.BookingResponse{ID: 42, Status: "cancelled"}, nil)

	rec := doCancel(newRouter(svc), "42", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_CustomerWithoutToken(t *testing.T) {
	svc := new(MockBookingService)

	rec := doCancel(newRouter(svc), "42", `{"reason":"plans changed"}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   domain.ErrorKind
	}{
		{"invalid token", fmt.Errorf("%w: wrong booking", bookings.ErrInvalidToken), http.StatusForbidden, domain.KindInvalidToken},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound, domain.KindNotFound},
		{"already cancelled", domain.NewInvalidTransitionError(domain.StatusCancelled, domain.StatusCancelled), http.StatusConflict, domain.KindInvalidStateTransition},
		{"internal", fmt.Errorf("%w: db down", bookings.ErrInternal), http.StatusInternalServerError, domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("Cancel", mock.Anything, int64(7), mock.Anything).Return(nil, tt.err)

			rec := doCancel(newRouter(svc), "7", `{"token":"tok"}`, false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandle_InvalidBookingID(t *testing.T) {
	svc := new(MockBookingService)

	rec := doCancel(newRouter(svc), "abc", `{"token":"tok"}`, false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
