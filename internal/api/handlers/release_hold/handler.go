package release_hold

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/holds"
)

const msgInvalidHoldID = "некорректный ID временной брони"

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

// Handle DELETE /api/v1/holds/{holdId}
// Освобождение идемпотентно: отсутствующая бронь тоже даёт 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	holdID := mux.Vars(r)["holdId"]
	if _, err := uuid.Parse(holdID); err != nil {
		h.logger.Warn("DELETE /holds/{id} - Invalid hold ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHoldID)
		return
	}

	if err := h.service.Release(r.Context(), holdID); err != nil {
		if errors.Is(err, holds.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidHoldID)
			return
		}
		h.logger.Error("DELETE /holds/{id} - Failed to release hold: id=%s, error=%v", holdID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /holds/{id} - Hold released: id=%s", holdID)
	w.WriteHeader(http.StatusNoContent)
}
