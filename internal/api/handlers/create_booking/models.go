package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	createBooking "github.com/m04kA/PetBoarding-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PetBoarding-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SessionID     string          `json:"sessionId,omitempty"`
	ServiceID     string          `json:"serviceId" validate:"required"`
	StartDate     string          `json:"startDate" validate:"required"` // "2025-10-15"
	EndDate       string          `json:"endDate" validate:"required"`
	Quantity      int             `json:"quantity" validate:"min=1,max=10"`
	Animals       []AnimalRequest `json:"animals,omitempty" validate:"omitempty,dive"`
	Contact       ContactRequest  `json:"contact"`
	ArrivalTime   string          `json:"arrivalTime,omitempty"` // "09:00"
	DepartureTime string          `json:"departureTime,omitempty"`
	FullDay       bool            `json:"fullDay,omitempty"`
	Sterilized    bool            `json:"sterilized,omitempty"`
	PaymentRef    *string         `json:"paymentRef,omitempty"`
}

// AnimalRequest данные животного
type AnimalRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Breed string `json:"breed,omitempty" validate:"max=100"`
	Age   int    `json:"age,omitempty" validate:"min=0,max=40"`
	Size  string `json:"size,omitempty" validate:"omitempty,oneof=small medium large"`
}

// ContactRequest контакты владельца
type ContactRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" validate:"max=40"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	ServiceID     string  `json:"serviceId"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Quantity      int     `json:"quantity"`
	Days          int     `json:"days"`
	RatePerUnit   float64 `json:"ratePerUnit"`
	Total         float64 `json:"total"`
	SurchargeNote string  `json:"surchargeNote,omitempty"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	CreatedAt     string  `json:"createdAt"`
}

// Normalize убирает пробелы по краям контактных данных до валидации
func (r *CreateBookingRequest) Normalize() {
	r.Contact.Name = strings.TrimSpace(r.Contact.Name)
	r.Contact.Email = strings.TrimSpace(r.Contact.Email)
	r.Contact.Phone = strings.TrimSpace(r.Contact.Phone)
}

// ToUseCaseRequest конвертирует HTTP request в модель use case (с парсингом дат)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	animals := make([]domain.Animal, len(r.Animals))
	for i, a := range r.Animals {
		animals[i] = domain.Animal{
			Name:  a.Name,
			Breed: a.Breed,
			Age:   a.Age,
			Size:  domain.SizeCategory(a.Size),
		}
	}

	return &createBooking.Request{
		SessionID: r.SessionID,
		ServiceID: domain.ServiceID(r.ServiceID),
		StartDate: start,
		EndDate:   end,
		Quantity:  r.Quantity,
		Animals:   animals,
		Contact: domain.Contact{
			Name:  r.Contact.Name,
			Email: r.Contact.Email,
			Phone: r.Contact.Phone,
		},
		ArrivalTime:   types.TimeString(r.ArrivalTime),
		DepartureTime: types.TimeString(r.DepartureTime),
		FullDay:       r.FullDay,
		Sterilized:    r.Sterilized,
		PaymentRef:    r.PaymentRef,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ServiceID:     string(resp.ServiceID),
		StartDate:     resp.StartDate.Format(domain.DateFormat),
		EndDate:       resp.EndDate.Format(domain.DateFormat),
		Quantity:      resp.Quantity,
		Days:          resp.Days,
		RatePerUnit:   resp.RatePerUnit,
		Total:         resp.Total,
		SurchargeNote: resp.SurchargeNote,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
