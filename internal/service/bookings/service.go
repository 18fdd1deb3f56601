package bookings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetBoarding-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PetBoarding-BookingService/internal/integrations/payment"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/pricing"
	"github.com/m04kA/PetBoarding-BookingService/pkg/ptr"
)

// Service жизненный цикл бронирования: подтверждение, отклонение, отмена
//
// Каждая операция заново читает бронирование из хранилища перед проверкой перехода.
// Одновременные изменения одного бронирования не синхронизируются: побеждает последняя запись.
type Service struct {
	bookingRepo  BookingRepository
	payments     PaymentGateway
	tokens       TokenSigner
	notifier     Notifier
	refunds      RefundPolicy
	policy       domain.BookingPolicy
	listLimit    uint64
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	payments PaymentGateway,
	tokens TokenSigner,
	notifier Notifier,
	refunds RefundPolicy,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		payments:     payments,
		tokens:       tokens,
		notifier:     notifier,
		refunds:      refunds,
		policy:       policy,
		listLimit:    domain.DefaultCustomerListingLimit,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithListLimit задаёт максимальный размер выдачи ListByEmail
func (s *Service) WithListLimit(limit uint64) *Service {
	if limit > 0 {
		s.listLimit = limit
	}
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListByEmail возвращает бронирования клиента по email, новые первыми
func (s *Service) ListByEmail(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	limit := req.Limit
	if limit == 0 || limit > s.listLimit {
		limit = s.listLimit
	}

	s.logger.Info("ListByEmail: fetching bookings for email=%s, limit=%d", email, limit)

	bookings, err := s.bookingRepo.Find(ctx, domain.BookingsFilter{
		Email: &email,
		Limit: limit,
	})
	if err != nil {
		s.logger.Error("ListByEmail: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByEmail: found %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование и списывает оплату
// При неудачном списании бронирование остаётся в pending, причина сохраняется в paymentError
func (s *Service) Confirm(ctx context.Context, id int64) (*models.ConfirmBookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", id)

	booking, err := s.load(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: booking id=%d is %s", id, booking.Status)
		return nil, domain.NewInvalidTransitionError(booking.Status, domain.StatusConfirmed)
	}

	switch {
	case booking.IsPaid():
		s.logger.Info("Confirm: booking id=%d already paid, skipping capture", id)
	case booking.PaymentRef == nil:
		s.logger.Warn("Confirm: booking id=%d has no payment method, confirming without capture", id)
	default:
		paymentID, err := s.capture(ctx, booking)
		if err != nil {
			return nil, s.recordCaptureFailure(ctx, booking, err)
		}
		booking.PaymentID = &paymentID
		booking.PaymentStatus = domain.PaymentPaid
		booking.PaymentError = nil
	}

	token, err := s.tokens.Sign(domain.TokenPayload{
		BookingID: booking.ID,
		Type:      domain.TokenTypeCancel,
	}, s.policy.CancelTokenTTL)
	if err != nil {
		s.logger.Error("Confirm: failed to sign cancel token for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - sign token: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	booking.Status = domain.StatusConfirmed
	booking.ConfirmedAt = &now
	booking.CancellationToken = &token

	if err := s.save(ctx, "Confirm", booking); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.EventBookingConfirmed, booking)

	s.logger.Info("Confirm: booking id=%d confirmed, payment status=%s", id, booking.PaymentStatus)
	return &models.ConfirmBookingResponse{
		Booking:     models.FromDomainBooking(booking),
		CancelToken: token,
	}, nil
}

// Reject отклоняет бронирование без каких-либо платёжных действий
func (s *Service) Reject(ctx context.Context, id int64, req *models.RejectBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reject: rejecting booking id=%d", id)

	if req == nil {
		req = &models.RejectBookingRequest{}
	}

	reason, err := normalizeReason(req.Reason, domain.DefaultRejectionReason)
	if err != nil {
		return nil, err
	}

	booking, err := s.load(ctx, "Reject", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(domain.StatusRejected) {
		s.logger.Warn("Reject: booking id=%d is %s", id, booking.Status)
		return nil, domain.NewInvalidTransitionError(booking.Status, domain.StatusRejected)
	}

	now := s.timeProvider.Now()
	booking.Status = domain.StatusRejected
	booking.RejectedAt = &now
	booking.RejectionReason = &reason

	if err := s.save(ctx, "Reject", booking); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.EventBookingRejected, booking)

	s.logger.Info("Reject: booking id=%d rejected", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование
// Если передан токен, он должен быть токеном отмены именно этого бронирования.
// Для оплаченного бронирования рассчитывается возврат; ошибка возврата не мешает отмене,
// refundId остаётся пустым, причина сохраняется в refundError для ручной сверки.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	s.logger.Info("Cancel: cancelling booking id=%d, selfService=%t", id, req.Token != nil)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if req.Token != nil {
		if err := s.verifyCancelToken(*req.Token, id); err != nil {
			s.logger.Warn("Cancel: token rejected for booking id=%d: %v", id, err)
			return nil, err
		}
	}

	reason, err := normalizeReason(req.Reason, "")
	if err != nil {
		return nil, err
	}

	booking, err := s.load(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: booking id=%d is %s", id, booking.Status)
		return nil, domain.NewInvalidTransitionError(booking.Status, domain.StatusCancelled)
	}

	now := s.timeProvider.Now()

	if booking.IsPaid() {
		stayStart := domain.InLocation(booking.StartDate, s.policy.Location)
		amount := s.refunds.RefundFor(booking.Total, stayStart, now)
		booking.RefundAmount = &amount

		if amount > 0 {
			refundID, err := s.refund(ctx, booking, amount)
			if err != nil {
				s.logger.Error("Cancel: %v for booking id=%d, amount=%.2f: %v",
					domain.ErrPaymentRefundFailed, id, amount, err)
				msg := err.Error()
				booking.RefundID = nil
				booking.RefundError = &msg
			} else {
				booking.RefundID = &refundID
				booking.RefundError = nil
				booking.PaymentStatus = domain.PaymentRefunded
			}
		}
		s.logger.Info("Cancel: booking id=%d refund amount=%.2f of %.2f", id, amount, booking.Total)
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &now
	if reason != "" {
		booking.CancellationReason = &reason
	}

	if err := s.save(ctx, "Cancel", booking); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.EventBookingCancelled, booking)

	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// load заново читает бронирование из хранилища
func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

func (s *Service) save(ctx context.Context, op string, booking *domain.Booking) error {
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d disappeared during update", op, booking.ID)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: failed to update booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - update booking: %v", ErrInternal, op, err)
	}
	return nil
}

// capture списывает оплату, предварительно проверяя, не была ли она уже списана
func (s *Service) capture(ctx context.Context, booking *domain.Booking) (string, error) {
	ref := *booking.PaymentRef

	info, err := s.payments.GetPayment(ctx, ref)
	if err != nil {
		return "", err
	}
	if info.IsCaptured() {
		s.logger.Info("Confirm: payment %s of booking id=%d already captured", info.PaymentID, booking.ID)
		return info.PaymentID, nil
	}

	result, err := s.payments.Capture(ctx, payment.CaptureRequest{
		PaymentRef: ref,
		Amount:     pricing.ToMinorUnits(booking.Total),
		Currency:   s.policy.Currency,
		Metadata:   bookingMetadata(booking),
	})
	if err != nil {
		return "", err
	}

	return result.PaymentID, nil
}

// recordCaptureFailure сохраняет причину неудачного списания, бронирование остаётся в pending
func (s *Service) recordCaptureFailure(ctx context.Context, booking *domain.Booking, captureErr error) error {
	s.logger.Error("Confirm: capture failed for booking id=%d: %v", booking.ID, captureErr)

	msg := captureErr.Error()
	booking.PaymentError = &msg
	booking.PaymentStatus = domain.PaymentCaptureFailed

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		s.logger.Error("Confirm: failed to persist capture failure for booking id=%d: %v", booking.ID, err)
	}

	return fmt.Errorf("%w: %v", ErrPaymentCaptureFailed, captureErr)
}

func (s *Service) refund(ctx context.Context, booking *domain.Booking, amount float64) (string, error) {
	if ptr.Value(booking.PaymentID) == "" {
		return "", fmt.Errorf("%w: booking has no payment id", payment.ErrInvalidReference)
	}

	result, err := s.payments.Refund(ctx, payment.RefundRequest{
		PaymentID: *booking.PaymentID,
		Amount:    pricing.ToMinorUnits(amount),
		Metadata:  bookingMetadata(booking),
	})
	if err != nil {
		return "", err
	}

	return result.RefundID, nil
}

func (s *Service) verifyCancelToken(token string, bookingID int64) error {
	payload, err := s.tokens.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if payload.Type != domain.TokenTypeCancel {
		return fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, payload.Type)
	}
	if payload.BookingID != bookingID {
		return fmt.Errorf("%w: token issued for another booking", ErrInvalidToken)
	}
	return nil
}

// notify отправляет уведомление; ошибка только логируется и не отменяет переход
func (s *Service) notify(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) {
	if err := s.notifier.Notify(ctx, event, booking); err != nil {
		s.logger.Warn("%v: event=%s, booking id=%d: %v", domain.ErrNotificationFailed, event, booking.ID, err)
	}
}

func normalizeReason(reason *string, fallback string) (string, error) {
	if reason == nil {
		return fallback, nil
	}

	r := strings.TrimSpace(*reason)
	if len(r) > domain.MaxReasonLength {
		return "", fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	if r == "" {
		return fallback, nil
	}
	return r, nil
}

func bookingMetadata(booking *domain.Booking) map[string]string {
	return map[string]string{
		"bookingId": strconv.FormatInt(booking.ID, 10),
		"serviceId": string(booking.ServiceID),
	}
}
