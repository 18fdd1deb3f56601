package create_quote

import (
	"fmt"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/pricing"
	"github.com/m04kA/PetBoarding-BookingService/pkg/types"
)

// CreateQuoteRequest HTTP request model
type CreateQuoteRequest struct {
	ServiceID     string   `json:"serviceId" validate:"required"`
	StartDate     string   `json:"startDate" validate:"required"`
	EndDate       string   `json:"endDate" validate:"required"`
	Quantity      int      `json:"quantity" validate:"min=1,max=10"`
	ArrivalTime   string   `json:"arrivalTime,omitempty"`
	DepartureTime string   `json:"departureTime,omitempty"`
	FullDay       bool     `json:"fullDay,omitempty"`
	Sizes         []string `json:"sizes,omitempty" validate:"omitempty,dive,oneof=small medium large"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ServiceID     string  `json:"serviceId"`
	Days          int     `json:"days"`
	RatePerUnit   float64 `json:"ratePerUnit"`
	Total         float64 `json:"total"`
	SurchargeNote string  `json:"surchargeNote,omitempty"`
}

// ToPricingRequest конвертирует HTTP request в запрос движка (с парсингом дат)
func (r *CreateQuoteRequest) ToPricingRequest() (pricing.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return pricing.Request{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return pricing.Request{}, fmt.Errorf("endDate: %w", err)
	}

	sizes := make([]domain.SizeCategory, len(r.Sizes))
	for i, s := range r.Sizes {
		sizes[i] = domain.SizeCategory(s)
	}

	return pricing.Request{
		ServiceID:     domain.ServiceID(r.ServiceID),
		StartDate:     start,
		EndDate:       end,
		Quantity:      r.Quantity,
		ArrivalTime:   types.TimeString(r.ArrivalTime),
		DepartureTime: types.TimeString(r.DepartureTime),
		FullDay:       r.FullDay,
		Sizes:         sizes,
	}, nil
}

// FromQuote конвертирует результат расчёта в HTTP response
func FromQuote(serviceID string, q *pricing.Quote) *QuoteResponse {
	return &QuoteResponse{
		ServiceID:     serviceID,
		Days:          q.Days,
		RatePerUnit:   q.RatePerUnit,
		Total:         q.Total,
		SurchargeNote: q.SurchargeNote,
	}
}
