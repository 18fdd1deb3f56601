package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда до начала пребывания меньше минимального времени
	ErrTooLateToBook = fmt.Errorf("create_booking: too late to book: %w", domain.ErrValidation)

	// ErrCapacityConflict возвращается, когда на одну из дат не хватает мест
	ErrCapacityConflict = fmt.Errorf("create_booking: %w", domain.ErrCapacityConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
