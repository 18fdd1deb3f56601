package reject_booking

import (
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
)

// RejectBookingRequest HTTP request model, тело необязательно
type RejectBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RejectBookingRequest) ToServiceRequest() *models.RejectBookingRequest {
	return &models.RejectBookingRequest{Reason: r.Reason}
}
