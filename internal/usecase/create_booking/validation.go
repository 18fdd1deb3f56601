package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/capacity"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if domain.DateOnly(req.EndDate).Before(domain.DateOnly(req.StartDate)) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if domain.DayCount(req.StartDate, req.EndDate) > domain.MaxStayDays {
		return fmt.Errorf("%w: stay must not exceed %d days", ErrInvalidInput, domain.MaxStayDays)
	}

	if req.Quantity < 1 || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxQuantity)
	}

	if len(req.Animals) > 0 && len(req.Animals) != req.Quantity {
		return fmt.Errorf("%w: %d animals described for quantity %d", ErrInvalidInput, len(req.Animals), req.Quantity)
	}

	for i, a := range req.Animals {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: animal #%d has no name", ErrInvalidInput, i+1)
		}
	}

	if strings.TrimSpace(req.Contact.Name) == "" {
		return fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}

	if err := validate.Var(req.Contact.Email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid contact email: %v", ErrInvalidInput, err)
	}

	if !req.ArrivalTime.IsZero() {
		if err := req.ArrivalTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid arrivalTime format: %v", ErrInvalidInput, err)
		}
	}

	if !req.DepartureTime.IsZero() {
		if err := req.DepartureTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid departureTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateLeadTime проверяет минимальное время до начала пребывания
func validateLeadTime(start, now time.Time, minLeadTime time.Duration) error {
	if start.Sub(now) < minLeadTime {
		return fmt.Errorf("%w: stay must start at least %s from now", ErrTooLateToBook, minLeadTime)
	}
	return nil
}

// checkCapacity проверяет, что каждый день диапазона вмещает новое бронирование
func checkCapacity(days []domain.DayCapacity, quantity int, hasLarge bool, service domain.ServiceID) error {
	checkLarge := hasLarge && capacity.EnforcesLargeLimit(service)

	for _, day := range days {
		if day.SlotsAvailable < quantity {
			return fmt.Errorf("%w: date %s has %d slots left, requested %d",
				ErrCapacityConflict, day.Date.Format(domain.DateFormat), day.SlotsAvailable, quantity)
		}
		if checkLarge && day.LargeCategorySlotsAvailable < 1 {
			return fmt.Errorf("%w: large animal limit reached on %s",
				ErrCapacityConflict, day.Date.Format(domain.DateFormat))
		}
	}
	return nil
}

// animalSizes размерные категории для расчёта цены
func animalSizes(animals []domain.Animal) []domain.SizeCategory {
	sizes := make([]domain.SizeCategory, 0, len(animals))
	for _, a := range animals {
		if a.Size != "" {
			sizes = append(sizes, a.Size)
		}
	}
	return sizes
}
