package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/PetBoarding-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidQuery = "некорректные параметры: ожидаются startDate и endDate в формате YYYY-MM-DD и quantity"
	msgInvalidInput = "некорректный запрос проверки доступности"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: startDate, endDate (YYYY-MM-DD), quantity, hasLargeAnimal, serviceId, sessionId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to check availability: service=%s, error=%v",
				useCaseReq.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Checked: service=%s, available=%t, days=%d",
		useCaseReq.ServiceID, result.Available, len(result.PerDay))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
