package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindInRange бронирования с заданными статусами, пересекающие [start, end] включительно
	FindInRange(ctx context.Context, start, end time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория временных броней
type HoldRepository interface {
	FindActive(ctx context.Context, now time.Time) ([]*domain.Hold, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
