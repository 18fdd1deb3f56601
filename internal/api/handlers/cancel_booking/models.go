package cancel_booking

import (
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
// Клиент передаёт токен отмены из письма; администратору токен не нужен
type CancelBookingRequest struct {
	Token  *string `json:"token,omitempty"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(isAdmin bool) *models.CancelBookingRequest {
	req := &models.CancelBookingRequest{Reason: r.Reason}
	if !isAdmin {
		req.Token = r.Token
	}
	return req
}
