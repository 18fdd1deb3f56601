package reserve_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/holds"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректный запрос временной брони"
	msgNoCapacity         = "на выбранные даты недостаточно свободных мест"
)

type Handler struct {
	service HoldService
	logger  Logger
}

func NewHandler(service HoldService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /holds - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	hold, err := h.service.Reserve(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, holds.ErrCapacityConflict):
			h.logger.Warn("POST /holds - No capacity: session=%s, quantity=%d", req.SessionID, req.Quantity)
			handlers.RespondConflict(w, domain.KindCapacityConflict, msgNoCapacity)

		case errors.Is(err, holds.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: session=%s: %v", req.SessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /holds - Failed to reserve: session=%s, error=%v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold created: id=%s, session=%s", hold.ID, hold.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainHold(hold))
}
