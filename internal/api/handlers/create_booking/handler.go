package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	createBooking "github.com/m04kA/PetBoarding-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBooking     = "некорректные данные бронирования"
	msgTooLateToBook      = "слишком поздно для бронирования на эти даты"
	msgNoCapacity         = "на выбранные даты недостаточно свободных мест"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.Normalize()
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBooking)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCapacityConflict):
			h.logger.Warn("POST /bookings - No capacity: service=%s, period=%s to %s, quantity=%d",
				req.ServiceID, req.StartDate, req.EndDate, req.Quantity)
			handlers.RespondConflict(w, domain.KindCapacityConflict, msgNoCapacity)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: start=%s", req.StartDate)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid booking: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service=%s, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, total=%.2f", result.ID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
