package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

const (
	minCalendarYear = 2000
	maxCalendarYear = 2100
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
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

	return nil
}

// validateCalendarRequest валидирует месяц и год
func validateCalendarRequest(req *CalendarRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Month < int(time.January) || req.Month > int(time.December) {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	if req.Year < minCalendarYear || req.Year > maxCalendarYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minCalendarYear, maxCalendarYear)
	}

	return nil
}

// isTooLate проверяет минимальное время до начала пребывания
func isTooLate(start time.Time, now time.Time, minLeadTime time.Duration) bool {
	return start.Sub(now) < minLeadTime
}
