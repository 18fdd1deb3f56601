package check_availability

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// ReasonCode причина недоступности дат
type ReasonCode string

const (
	ReasonTooLate          ReasonCode = "TOO_LATE"
	ReasonCapacityExceeded ReasonCode = "CAPACITY_EXCEEDED"
	ReasonLargeDogLimit    ReasonCode = "LARGE_DOG_LIMIT"
)

// Request модель запроса на проверку доступности
type Request struct {
	StartDate      time.Time        // Первый день пребывания
	EndDate        time.Time        // Последний день пребывания (включительно)
	Quantity       int              // Количество животных
	HasLargeAnimal bool             // Есть ли животное крупной категории
	ServiceID      domain.ServiceID // Услуга; felin считается по отдельному потолку
	SessionID      string           // Временные брони этой сессии не учитываются (опционально)
}

// Response модель ответа о доступности
type Response struct {
	Available  bool
	ReasonCode *ReasonCode
	PerDay     []DayAvailability

	// Дни, на которых не хватает мест
	CapacityViolations []time.Time
	// Дни, на которых исчерпан подлимит крупных животных
	LargeAnimalViolations []time.Time
}

// DayAvailability загрузка одного дня
type DayAvailability struct {
	Date                        time.Time
	TotalRequested              int
	HeldCount                   int
	LargeCategoryCount          int
	PendingCount                int
	ConfirmedCount              int
	SlotsAvailable              int
	LargeCategorySlotsAvailable int
	Status                      domain.DisplayStatus
}

// CalendarRequest модель запроса календаря на месяц
type CalendarRequest struct {
	Month     int
	Year      int
	ServiceID domain.ServiceID
}

// CalendarResponse модель ответа с календарём
type CalendarResponse struct {
	Month     int
	Year      int
	ServiceID domain.ServiceID
	Days      []DayAvailability
}
