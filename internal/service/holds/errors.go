package holds

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("holds: invalid input: %w", domain.ErrValidation)

	// ErrCapacityConflict возвращается, когда на одну из дат не хватает мест
	ErrCapacityConflict = fmt.Errorf("holds: %w", domain.ErrCapacityConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holds: internal error")
)
