package check_availability

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/PetBoarding-BookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available             bool              `json:"available"`
	ReasonCode            *string           `json:"reasonCode"`
	PerDay                []DayAvailability `json:"perDay"`
	CapacityViolations    []string          `json:"capacityViolations"`
	LargeAnimalViolations []string          `json:"largeAnimalViolations"`
}

// DayAvailability загрузка одного дня
type DayAvailability struct {
	Date                        string `json:"date"`
	TotalRequested              int    `json:"totalRequested"`
	HeldCount                   int    `json:"heldCount"`
	LargeCategoryCount          int    `json:"largeCategoryCount"`
	PendingCount                int    `json:"pendingCount"`
	ConfirmedCount              int    `json:"confirmedCount"`
	SlotsAvailable              int    `json:"slotsAvailable"`
	LargeCategorySlotsAvailable int    `json:"largeCategorySlotsAvailable"`
	Status                      string `json:"status"`
}

// ToUseCaseRequest создает запрос use case из query параметров
// startDate, endDate, quantity обязательны; hasLargeAnimal, serviceId, sessionId опциональны
func ToUseCaseRequest(q url.Values) (*checkAvailability.Request, error) {
	start, err := time.Parse(domain.DateFormat, q.Get("startDate"))
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := time.Parse(domain.DateFormat, q.Get("endDate"))
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	quantity, err := strconv.Atoi(q.Get("quantity"))
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}

	hasLarge := false
	if v := q.Get("hasLargeAnimal"); v != "" {
		hasLarge, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("hasLargeAnimal: %w", err)
		}
	}

	return &checkAvailability.Request{
		StartDate:      start,
		EndDate:        end,
		Quantity:       quantity,
		HasLargeAnimal: hasLarge,
		ServiceID:      domain.ServiceID(q.Get("serviceId")),
		SessionID:      q.Get("sessionId"),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Available:             resp.Available,
		PerDay:                make([]DayAvailability, len(resp.PerDay)),
		CapacityViolations:    formatDates(resp.CapacityViolations),
		LargeAnimalViolations: formatDates(resp.LargeAnimalViolations),
	}
	if resp.ReasonCode != nil {
		code := string(*resp.ReasonCode)
		result.ReasonCode = &code
	}
	for i, day := range resp.PerDay {
		result.PerDay[i] = DayAvailability{
			Date:                        day.Date.Format(domain.DateFormat),
			TotalRequested:              day.TotalRequested,
			HeldCount:                   day.HeldCount,
			LargeCategoryCount:          day.LargeCategoryCount,
			PendingCount:                day.PendingCount,
			ConfirmedCount:              day.ConfirmedCount,
			SlotsAvailable:              day.SlotsAvailable,
			LargeCategorySlotsAvailable: day.LargeCategorySlotsAvailable,
			Status:                      string(day.Status),
		}
	}
	return result
}

func formatDates(dates []time.Time) []string {
	result := make([]string, len(dates))
	for i, d := range dates {
		result[i] = d.Format(domain.DateFormat)
	}
	return result
}
