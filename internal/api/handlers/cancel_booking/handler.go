package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/api/middleware"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings"
	"github.com/m04kA/PetBoarding-BookingService/pkg/ptr"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReason      = "причина отмены слишком длинная"
	msgMissingToken       = "требуется токен отмены или ключ администратора"
	msgInvalidToken       = "недействительный токен отмены"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "бронирование уже отклонено или отменено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReason)
		return
	}

	isAdmin := middleware.IsAdmin(r.Context())
	if !isAdmin && ptr.Value(req.Token) == "" {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing token: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID, req.ToServiceRequest(isAdmin))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidToken):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid token: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgInvalidToken)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/{id}/cancel - %v", err)
			handlers.RespondConflict(w, domain.KindInvalidStateTransition, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%d, admin=%t", bookingID, isAdmin)
	handlers.RespondJSON(w, http.StatusOK, result)
}
