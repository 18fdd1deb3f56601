package release_hold

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
	"github.com/m04kA/PetBoarding-BookingService/internal/service/holds"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
)

type MockHoldService struct {
	mock.Mock
}

func (m *MockHoldService) Release(ctx context.Context, holdID string) error {
	args := m.Called(ctx, holdID)
	return args.Error(0)
}

func release(svc *MockHoldService, holdID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/holds/{holdId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/holds/"+holdID, nil))
	return rec
}

func TestHandle_UnknownHoldIsNoContent(t *testing.T) {
	const unknownID = "3f1c2a4e-7b8d-4e6f-9a0b-1c2d3e4f5a6b"

	svc := new(MockHoldService)
	svc.On("Release", mock.Anything, unknownID).Return(nil)

	rec := release(svc, unknownID)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_MalformedID(t *testing.T) {
	svc := new(MockHoldService)

	rec := release(svc, "not-a-uuid")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.KindValidation, body.Code)
	svc.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestHandle_StorageFailure(t *testing.T) {
	const holdID = "3f1c2a4e-7b8d-4e6f-9a0b-1c2d3e4f5a6b"

	svc := new(MockHoldService)
	svc.On("Release", mock.Anything, holdID).Return(fmt.Errorf("%w: connection reset", holds.ErrInternal))

	rec := release(svc, holdID)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
