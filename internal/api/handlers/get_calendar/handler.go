package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/PetBoarding-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidQuery = "параметры month и year обязательны и должны быть числами"
	msgInvalidMonth = "некорректный месяц или год"
)

type Handler struct {
	useCase CalendarUseCase
	logger  Logger
}

func NewHandler(useCase CalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: month (1-12), year, serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Calendar(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid month: month=%d, year=%d", useCaseReq.Month, useCaseReq.Year)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: month=%d, year=%d, error=%v",
				useCaseReq.Month, useCaseReq.Year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
