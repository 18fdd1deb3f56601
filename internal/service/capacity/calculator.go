package capacity

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// Snapshot срез данных, по которому считается загрузка
// Калькулятор не меняет срез и не обращается к хранилищу
type Snapshot struct {
	Bookings []*domain.Booking
	Holds    []*domain.Hold
	// ServiceID область запроса: felin считается отдельно от остальных услуг
	ServiceID domain.ServiceID
	// ExcludeSession временные брони этой сессии не уменьшают доступные места
	ExcludeSession string
	Now            time.Time
}

// Calculator считает загрузку календарного дня
type Calculator struct {
	policy domain.CapacityPolicy
}

// NewCalculator создает калькулятор вместимости
func NewCalculator(policy domain.CapacityPolicy) *Calculator {
	return &Calculator{policy: policy}
}

// ForDay возвращает загрузку одного дня
func (c *Calculator) ForDay(snapshot Snapshot, day time.Time) domain.DayCapacity {
	result := domain.DayCapacity{
		Date:         domain.DateOnly(day),
		Ceiling:      c.policy.CeilingFor(snapshot.ServiceID),
		LargeCeiling: c.policy.LargeCeiling,
	}

	for _, b := range snapshot.Bookings {
		if !b.IsActive() || !inScope(snapshot.ServiceID, b.ServiceID) || !b.CoversDay(day) {
			continue
		}

		result.TotalRequested += b.Quantity
		if b.HasLargeAnimal() {
			result.LargeCategoryCount++
		}

		switch b.Status {
		case domain.StatusPending:
			result.PendingCount++
		case domain.StatusConfirmed:
			result.ConfirmedCount++
		}
	}

	for _, h := range snapshot.Holds {
		if h.IsExpired(snapshot.Now) {
			continue
		}
		if snapshot.ExcludeSession != "" && h.SessionID == snapshot.ExcludeSession {
			continue
		}
		if !inScope(snapshot.ServiceID, h.ServiceID) || !h.CoversDay(day) {
			continue
		}
		result.HeldCount += h.Quantity
	}

	result.SlotsAvailable = result.Ceiling - result.TotalRequested - result.HeldCount
	result.LargeCategorySlotsAvailable = result.LargeCeiling - result.LargeCategoryCount

	return result
}

// ForRange возвращает загрузку каждого дня диапазона [start, end] включительно
func (c *Calculator) ForRange(snapshot Snapshot, start, end time.Time) []domain.DayCapacity {
	days := domain.DaysInRange(start, end)
	result := make([]domain.DayCapacity, 0, len(days))
	for _, d := range days {
		result = append(result, c.ForDay(snapshot, d))
	}
	return result
}

// EnforcesLargeLimit возвращает true, если для услуги действует подлимит крупных животных
func EnforcesLargeLimit(service domain.ServiceID) bool {
	return service != domain.ServiceFelin
}

// inScope felin-запрос видит только felin, остальные запросы видят всё, кроме felin
func inScope(scope, service domain.ServiceID) bool {
	if scope == domain.ServiceFelin {
		return service == domain.ServiceFelin
	}
	return service != domain.ServiceFelin
}
