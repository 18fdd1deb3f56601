package domain

import "time"

// DisplayStatus статус дня в календаре
type DisplayStatus string

const (
	DisplayFull      DisplayStatus = "full"
	DisplayLimited   DisplayStatus = "limited"
	DisplayAvailable DisplayStatus = "available"
)

// DayCapacity производное представление загрузки одного календарного дня
type DayCapacity struct {
	Date                        time.Time
	TotalRequested              int // животные в активных бронированиях
	HeldCount                   int // животные во временных бронях
	LargeCategoryCount          int // бронирования с животным крупной категории
	PendingCount                int
	ConfirmedCount              int
	Ceiling                     int
	LargeCeiling                int
	SlotsAvailable              int // может быть отрицательным при переполнении
	LargeCategorySlotsAvailable int
}

// IsFull returns true if no slot is left for the day
func (c *DayCapacity) IsFull() bool {
	return c.SlotsAvailable <= 0
}

// Display возвращает трёхзначный статус дня для календаря
func (c *DayCapacity) Display(limitedThreshold int) DisplayStatus {
	switch {
	case c.IsFull():
		return DisplayFull
	case c.SlotsAvailable <= limitedThreshold:
		return DisplayLimited
	default:
		return DisplayAvailable
	}
}
