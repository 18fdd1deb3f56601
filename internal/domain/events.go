package domain

// BookingEvent событие жизненного цикла бронирования для уведомлений
type BookingEvent string

const (
	EventBookingReceived  BookingEvent = "booking.received"
	EventBookingConfirmed BookingEvent = "booking.confirmed"
	EventBookingRejected  BookingEvent = "booking.rejected"
	EventBookingCancelled BookingEvent = "booking.cancelled"
)

// TokenTypeCancel тип токена самостоятельной отмены
const TokenTypeCancel = "cancel"

// TokenPayload полезная нагрузка подписанного токена
type TokenPayload struct {
	BookingID int64
	Type      string
}
