package notification

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// Event сообщение о смене состояния бронирования
// Потребители (почта, синхронизация календаря) получают полную запись бронирования
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    BookingPayload `json:"booking"`
}

// BookingPayload снимок бронирования в событии
type BookingPayload struct {
	ID                 int64           `json:"id"`
	ServiceID          string          `json:"serviceId"`
	StartDate          string          `json:"startDate"`
	EndDate            string          `json:"endDate"`
	Quantity           int             `json:"quantity"`
	Animals            []domain.Animal `json:"animals"`
	ContactName        string          `json:"contactName"`
	ContactEmail       string          `json:"contactEmail"`
	ContactPhone       string          `json:"contactPhone,omitempty"`
	ArrivalTime        string          `json:"arrivalTime,omitempty"`
	DepartureTime      string          `json:"departureTime,omitempty"`
	Sterilized         bool            `json:"sterilized"`
	Total              float64         `json:"total"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"paymentStatus"`
	CancellationToken  *string         `json:"cancellationToken,omitempty"`
	RejectionReason    *string         `json:"rejectionReason,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	RefundAmount       *float64        `json:"refundAmount,omitempty"`
	RefundID           *string         `json:"refundId,omitempty"`
}

func newBookingPayload(b *domain.Booking) BookingPayload {
	return BookingPayload{
		ID:                 b.ID,
		ServiceID:          string(b.ServiceID),
		StartDate:          b.StartDate.Format(domain.DateFormat),
		EndDate:            b.EndDate.Format(domain.DateFormat),
		Quantity:           b.Quantity,
		Animals:            b.Animals,
		ContactName:        b.Contact.Name,
		ContactEmail:       b.Contact.Email,
		ContactPhone:       b.Contact.Phone,
		ArrivalTime:        b.ArrivalTime.String(),
		DepartureTime:      b.DepartureTime.String(),
		Sterilized:         b.Sterilized,
		Total:              b.Total,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		CancellationToken:  b.CancellationToken,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		RefundAmount:       b.RefundAmount,
		RefundID:           b.RefundID,
	}
}
