package get_calendar

import (
	"context"

	checkAvailability "github.com/m04kA/PetBoarding-BookingService/internal/usecase/check_availability"
)

type CalendarUseCase interface {
	Calendar(ctx context.Context, req *checkAvailability.CalendarRequest) (*checkAvailability.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
