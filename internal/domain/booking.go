package domain

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/pkg/types"
)

// ServiceID идентификатор услуги (тарифа)
type ServiceID string

const (
	ServiceFlash  ServiceID = "flash"  // дневной присмотр (полдня / полный день)
	ServiceSejour ServiceID = "sejour" // многодневное проживание собак
	ServiceFelin  ServiceID = "felin"  // проживание кошек, отдельная вместимость
)

// SizeCategory размерная категория животного
type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentAuthorized    PaymentStatus = "authorized" // средства заблокированы, списание при подтверждении
	PaymentPaid          PaymentStatus = "paid"
	PaymentCaptureFailed PaymentStatus = "capture_failed"
	PaymentRefunded      PaymentStatus = "refunded"
)

// Animal данные одного животного в бронировании
type Animal struct {
	Name  string       `json:"name"`
	Breed string       `json:"breed,omitempty"`
	Age   int          `json:"age,omitempty"`
	Size  SizeCategory `json:"size,omitempty"`
}

// Contact контактные данные владельца
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Booking бронирование передержки
// Даты хранятся как календарные дни (полночь в часовом поясе пансиона), диапазон включительный
type Booking struct {
	ID            int64
	ServiceID     ServiceID
	StartDate     time.Time
	EndDate       time.Time
	Quantity      int
	Animals       []Animal
	Contact       Contact
	ArrivalTime   types.TimeString
	DepartureTime types.TimeString
	Sterilized    bool
	Total         float64

	PaymentRef    *string // ссылка на авторизованный платёж (pre-auth), по ней выполняется списание
	PaymentID     *string
	PaymentStatus PaymentStatus
	PaymentError  *string // причина последней неудачной попытки списания

	Status            BookingStatus
	CancellationToken *string

	RejectionReason    *string
	CancellationReason *string
	RefundAmount       *float64
	RefundID           *string
	RefundError        *string

	ConfirmedAt *time.Time
	RejectedAt  *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking consumes capacity
func (b *Booking) IsActive() bool {
	return b.Status.IsValid() && !b.Status.IsTerminal()
}

// IsPaid returns true if money was actually captured for this booking
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// HasLargeAnimal returns true if any animal is tagged with the large category
func (b *Booking) HasLargeAnimal() bool {
	for _, a := range b.Animals {
		if a.Size == SizeLarge {
			return true
		}
	}
	return false
}

// CoversDay returns true if the booking's inclusive date range contains the calendar day
func (b *Booking) CoversDay(day time.Time) bool {
	return DateRangeContains(b.StartDate, b.EndDate, day)
}

// CanTransitionTo returns true if the booking may move to the target status
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	return b.Status.CanTransitionTo(target)
}

// BookingsFilter фильтр выборки бронирований
// Границы StartDate/EndDate включительные; бронирование попадает в выборку,
// если его диапазон дат пересекается с [StartDate, EndDate]
type BookingsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []BookingStatus // пусто = любые статусы
	ServiceID *ServiceID
	Email     *string
	Limit     uint64 // 0 = без ограничения
}
