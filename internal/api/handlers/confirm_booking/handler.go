package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgNotFound          = "бронирование не найдено"
	msgInvalidTransition = "подтвердить можно только бронирование в статусе pending"
	msgCaptureFailed     = "не удалось списать оплату, бронирование осталось в статусе pending"
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

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Confirm(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/{id}/confirm - %v", err)
			handlers.RespondConflict(w, domain.KindInvalidStateTransition, msgInvalidTransition)

		case errors.Is(err, bookings.ErrPaymentCaptureFailed):
			h.logger.Warn("POST /bookings/{id}/confirm - Capture failed: booking_id=%d: %v", bookingID, err)
			handlers.RespondErrorWithCode(w, http.StatusPaymentRequired, domain.KindPaymentCaptureFailed, msgCaptureFailed)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
