package domain

import (
	"errors"
	"fmt"
)

// ErrorKind стабильный код ошибки, по которому клиент различает ситуации
type ErrorKind string

const (
	KindValidation             ErrorKind = "VALIDATION_ERROR"
	KindNotFound               ErrorKind = "NOT_FOUND"
	KindInvalidStateTransition ErrorKind = "INVALID_STATE_TRANSITION"
	KindInvalidToken           ErrorKind = "INVALID_TOKEN"
	KindCapacityConflict       ErrorKind = "CAPACITY_CONFLICT"
	KindPaymentCaptureFailed   ErrorKind = "PAYMENT_CAPTURE_FAILED"
	KindPaymentRefundFailed    ErrorKind = "PAYMENT_REFUND_FAILED"
	KindNotificationFailed     ErrorKind = "NOTIFICATION_FAILED"
	KindInternal               ErrorKind = "INTERNAL"
)

var (
	// ErrValidation некорректные или отсутствующие входные данные
	ErrValidation = errors.New("validation error")

	// ErrNotFound бронирование или временная бронь не найдены
	ErrNotFound = errors.New("not found")

	// ErrInvalidStateTransition переход недопустим из текущего статуса
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrInvalidToken токен отсутствует, повреждён, другого типа или выдан для другого бронирования
	ErrInvalidToken = errors.New("invalid token")

	// ErrCapacityConflict места закончились на момент проверки
	ErrCapacityConflict = errors.New("capacity conflict")

	// ErrPaymentCaptureFailed платёжный провайдер отклонил списание
	ErrPaymentCaptureFailed = errors.New("payment capture failed")

	// ErrPaymentRefundFailed платёжный провайдер отклонил возврат
	ErrPaymentRefundFailed = errors.New("payment refund failed")

	// ErrNotificationFailed ошибка отправки уведомления, наружу не пробрасывается
	ErrNotificationFailed = errors.New("notification failed")
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrInvalidStateTransition, KindInvalidStateTransition},
	{ErrInvalidToken, KindInvalidToken},
	{ErrCapacityConflict, KindCapacityConflict},
	{ErrPaymentCaptureFailed, KindPaymentCaptureFailed},
	{ErrPaymentRefundFailed, KindPaymentRefundFailed},
	{ErrNotificationFailed, KindNotificationFailed},
}

// KindOf возвращает стабильный код ошибки; неизвестные ошибки считаются внутренними
func KindOf(err error) ErrorKind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// NewValidationError создает ошибку валидации с описанием
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidTransitionError называет текущий и запрошенный статусы
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move booking from %s to %s", ErrInvalidStateTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// NewInvalidTransitionError создает ошибку недопустимого перехода
func NewInvalidTransitionError(from, to BookingStatus) error {
	return &InvalidTransitionError{From: from, To: to}
}
