package get_calendar

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/PetBoarding-BookingService/internal/usecase/check_availability"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	Month     int           `json:"month"`
	Year      int           `json:"year"`
	ServiceID string        `json:"serviceId,omitempty"`
	Days      []CalendarDay `json:"days"`
}

// CalendarDay день календаря со статусом для отображения
type CalendarDay struct {
	Date                        string `json:"date"`
	Status                      string `json:"status"`
	SlotsAvailable              int    `json:"slotsAvailable"`
	LargeCategorySlotsAvailable int    `json:"largeCategorySlotsAvailable"`
	TotalRequested              int    `json:"totalRequested"`
	HeldCount                   int    `json:"heldCount"`
}

// ToUseCaseRequest создает запрос use case из query параметров month, year, serviceId
func ToUseCaseRequest(q url.Values) (*checkAvailability.CalendarRequest, error) {
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		return nil, fmt.Errorf("month: %w", err)
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return nil, fmt.Errorf("year: %w", err)
	}

	return &checkAvailability.CalendarRequest{
		Month:     month,
		Year:      year,
		ServiceID: domain.ServiceID(q.Get("serviceId")),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.CalendarResponse) *CalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = CalendarDay{
			Date:                        day.Date.Format(domain.DateFormat),
			Status:                      string(day.Status),
			SlotsAvailable:              day.SlotsAvailable,
			LargeCategorySlotsAvailable: day.LargeCategorySlotsAvailable,
			TotalRequested:              day.TotalRequested,
			HeldCount:                   day.HeldCount,
		}
	}

	return &CalendarResponse{
		Month:     resp.Month,
		Year:      resp.Year,
		ServiceID: string(resp.ServiceID),
		Days:      days,
	}
}
