package bookings

import (
	"context"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/integrations/payment"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// PaymentGateway интерфейс платёжного провайдера
type PaymentGateway interface {
	GetPayment(ctx context.Context, paymentRef string) (*payment.Info, error)
	Capture(ctx context.Context, req payment.CaptureRequest) (*payment.CaptureResult, error)
	Refund(ctx context.Context, req payment.RefundRequest) (*payment.RefundResult, error)
}

// TokenSigner интерфейс выпуска и проверки токенов самостоятельной отмены
type TokenSigner interface {
	Sign(payload domain.TokenPayload, ttl time.Duration) (string, error)
	Verify(token string) (*domain.TokenPayload, error)
}

// Notifier интерфейс уведомлений о смене статуса бронирования
type Notifier interface {
	Notify(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) error
}

// RefundPolicy интерфейс расчёта суммы возврата
type RefundPolicy interface {
	RefundFor(total float64, stayStart, now time.Time) float64
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
