package models

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// Request модели

// RejectBookingRequest запрос на отклонение бронирования
type RejectBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
// Без токена отмена выполняется от имени администратора
type CancelBookingRequest struct {
	Token  *string `json:"token,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// ListBookingsRequest запрос на поиск бронирований клиента
type ListBookingsRequest struct {
	Email string `json:"email"`
	Limit uint64 `json:"limit,omitempty"`
}

// Response модели

// AnimalResponse данные животного
type AnimalResponse struct {
	Name  string `json:"name"`
	Breed string `json:"breed,omitempty"`
	Age   int    `json:"age,omitempty"`
	Size  string `json:"size,omitempty"`
}

// ContactResponse контактные данные владельца
type ContactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64            `json:"id"`
	ServiceID     string           `json:"serviceId"`
	StartDate     string           `json:"startDate"` // "2025-06-10"
	EndDate       string           `json:"endDate"`
	Quantity      int              `json:"quantity"`
	Animals       []AnimalResponse `json:"animals"`
	Contact       ContactResponse  `json:"contact"`
	ArrivalTime   string           `json:"arrivalTime,omitempty"`
	DepartureTime string           `json:"departureTime,omitempty"`
	Sterilized    bool             `json:"sterilized"`
	Total         float64          `json:"total"`
	Status        string           `json:"status"`

	PaymentID     *string `json:"paymentId,omitempty"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentError  *string `json:"paymentError,omitempty"`

	RejectionReason    *string  `json:"rejectionReason,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	RefundAmount       *float64 `json:"refundAmount,omitempty"`
	RefundID           *string  `json:"refundId,omitempty"`
	RefundError        *string  `json:"refundError,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	RejectedAt  *string `json:"rejectedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfirmBookingResponse ответ на подтверждение, содержит токен самостоятельной отмены
type ConfirmBookingResponse struct {
	Booking     *BookingResponse `json:"booking"`
	CancelToken string           `json:"cancelToken"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ServiceID:          string(b.ServiceID),
		StartDate:          b.StartDate.Format(domain.DateFormat),
		EndDate:            b.EndDate.Format(domain.DateFormat),
		Quantity:           b.Quantity,
		Animals:            make([]AnimalResponse, 0, len(b.Animals)),
		Contact:            ContactResponse{Name: b.Contact.Name, Email: b.Contact.Email, Phone: b.Contact.Phone},
		ArrivalTime:        b.ArrivalTime.String(),
		DepartureTime:      b.DepartureTime.String(),
		Sterilized:         b.Sterilized,
		Total:              b.Total,
		Status:             string(b.Status),
		PaymentID:          b.PaymentID,
		PaymentStatus:      string(b.PaymentStatus),
		PaymentError:       b.PaymentError,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		RefundAmount:       b.RefundAmount,
		RefundID:           b.RefundID,
		RefundError:        b.RefundError,
		ConfirmedAt:        formatTime(b.ConfirmedAt),
		RejectedAt:         formatTime(b.RejectedAt),
		CancelledAt:        formatTime(b.CancelledAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	for _, a := range b.Animals {
		resp.Animals = append(resp.Animals, AnimalResponse{
			Name:  a.Name,
			Breed: a.Breed,
			Age:   a.Age,
			Size:  string(a.Size),
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
