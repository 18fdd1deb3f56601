package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: %w", domain.ErrValidation)

	// ErrInvalidToken возвращается, когда токен отмены не прошёл проверку
	ErrInvalidToken = fmt.Errorf("bookings: %w", domain.ErrInvalidToken)

	// ErrPaymentCaptureFailed возвращается, когда провайдер не списал оплату при подтверждении
	ErrPaymentCaptureFailed = fmt.Errorf("bookings: %w", domain.ErrPaymentCaptureFailed)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
