package holds

import (
	"context"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// HoldRepository интерфейс репозитория временных броней
type HoldRepository interface {
	Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error)
	Delete(ctx context.Context, id string) error
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	FindActive(ctx context.Context, now time.Time) ([]*domain.Hold, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
