package reject_booking

import (
	"context"

	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Reject(ctx context.Context, id int64, req *models.RejectBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
