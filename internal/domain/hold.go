package domain

import "time"

// HoldStatus статус временной брони
type HoldStatus string

const HoldStatusTemporary HoldStatus = "temporary"

// Hold временное резервирование мест на время оформления заказа
// Не является источником истины для вместимости: только сужает окно гонки между проверкой и созданием бронирования
type Hold struct {
	ID        string
	SessionID string
	ServiceID ServiceID
	Dates     []time.Time
	Quantity  int
	Status    HoldStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired returns true once the TTL has elapsed, whether or not the row was swept
func (h *Hold) IsExpired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// CoversDay returns true if the hold claims slots on the given calendar day
func (h *Hold) CoversDay(day time.Time) bool {
	for _, d := range h.Dates {
		if SameDay(d, day) {
			return true
		}
	}
	return false
}
