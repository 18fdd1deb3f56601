package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindInRange(ctx context.Context, start, end time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория временных броней
type HoldRepository interface {
	FindActive(ctx context.Context, now time.Time) ([]*domain.Hold, error)
}

// HoldReleaser освобождает временные брони сессии после оформления
type HoldReleaser interface {
	ReleaseSession(ctx context.Context, sessionID string) error
}

// Notifier интерфейс уведомлений о бронировании
type Notifier interface {
	Notify(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) error
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
