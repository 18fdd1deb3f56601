package create_booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetBoarding-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/capacity"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/pricing"
	"github.com/m04kA/PetBoarding-BookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
//
// По умолчанию проверка вместимости и запись не атомарны: два одновременных оформления могут
// вместе превысить потолок дня. В строгом режиме (policy.StrictCapacity) проверка и запись
// выполняются в одной сериализуемой транзакции.
type UseCase struct {
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	holds        HoldReleaser
	notifier     Notifier
	txManager    TransactionManager
	pricing      *pricing.Engine
	calculator   *capacity.Calculator
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	holds HoldReleaser,
	notifier Notifier,
	txManager TransactionManager,
	pricingEngine *pricing.Engine,
	calculator *capacity.Calculator,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		holds:        holds,
		notifier:     notifier,
		txManager:    txManager,
		pricing:      pricingEngine,
		calculator:   calculator,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализация и валидация входных данных
	req = normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	start := domain.InLocation(req.StartDate, uc.policy.Location)
	end := domain.InLocation(req.EndDate, uc.policy.Location)

	uc.logger.Info("CreateBooking: session=%s, service=%s, period=%s to %s, quantity=%d, strict=%t",
		req.SessionID, req.ServiceID, start.Format(domain.DateFormat), end.Format(domain.DateFormat),
		req.Quantity, uc.policy.StrictCapacity)

	// 2. Минимальное время до заезда
	now := uc.timeProvider.Now()
	if err := validateLeadTime(start, now, uc.policy.MinLeadTime); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Расчёт стоимости
	quote, err := uc.pricing.Compute(pricing.Request{
		ServiceID:     req.ServiceID,
		StartDate:     start,
		EndDate:       end,
		Quantity:      req.Quantity,
		ArrivalTime:   req.ArrivalTime,
		DepartureTime: req.DepartureTime,
		FullDay:       req.FullDay,
		Sizes:         animalSizes(req.Animals),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking := &domain.Booking{
		ServiceID:     req.ServiceID,
		StartDate:     start,
		EndDate:       end,
		Quantity:      req.Quantity,
		Animals:       req.Animals,
		Contact:       req.Contact,
		ArrivalTime:   req.ArrivalTime,
		DepartureTime: req.DepartureTime,
		Sterilized:    req.Sterilized,
		Total:         quote.Total,
		PaymentRef:    req.PaymentRef,
		PaymentStatus: domain.PaymentUnpaid,
		Status:        domain.StatusPending,
	}
	if ptr.Value(req.PaymentRef) != "" {
		booking.PaymentStatus = domain.PaymentAuthorized
	}

	// 4. Проверка вместимости и запись
	var result *domain.Booking
	create := func(ctx context.Context) error {
		created, err := uc.checkAndCreate(ctx, req.SessionID, booking, now)
		if err != nil {
			return err
		}
		result = created
		return nil
	}

	if uc.policy.StrictCapacity {
		err = uc.txManager.DoSerializable(ctx, create)
		if err != nil && bookingRepo.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization conflict: %v", err)
			err = fmt.Errorf("%w: concurrent booking for the same dates", ErrCapacityConflict)
		}
	} else {
		err = create(ctx)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.Total)

	// 5. Временная бронь сессии больше не нужна
	if err := uc.holds.ReleaseSession(ctx, req.SessionID); err != nil {
		uc.logger.Warn("CreateBooking: failed to release holds of session=%s: %v", req.SessionID, err)
	}

	// 6. Уведомление о получении заявки
	if err := uc.notifier.Notify(ctx, domain.EventBookingReceived, result); err != nil {
		uc.logger.Warn("%v: event=%s, booking id=%d: %v", domain.ErrNotificationFailed, domain.EventBookingReceived, result.ID, err)
	}

	return &Response{
		ID:            result.ID,
		ServiceID:     result.ServiceID,
		StartDate:     result.StartDate,
		EndDate:       result.EndDate,
		Quantity:      result.Quantity,
		Days:          quote.Days,
		RatePerUnit:   quote.RatePerUnit,
		Total:         result.Total,
		SurchargeNote: quote.SurchargeNote,
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		CreatedAt:     result.CreatedAt,
	}, nil
}

func (uc *UseCase) checkAndCreate(ctx context.Context, sessionID string, booking *domain.Booking, now time.Time) (*domain.Booking, error) {
	bookings, err := uc.bookingRepo.FindInRange(ctx, booking.StartDate, booking.EndDate, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	holds, err := uc.holdRepo.FindActive(ctx, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get holds: %w", ErrInternal, err)
	}

	days := uc.calculator.ForRange(capacity.Snapshot{
		Bookings:       bookings,
		Holds:          holds,
		ServiceID:      booking.ServiceID,
		ExcludeSession: sessionID,
		Now:            now,
	}, booking.StartDate, booking.EndDate)

	if err := checkCapacity(days, booking.Quantity, booking.HasLargeAnimal(), booking.ServiceID); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
	}

	return created, nil
}

// normalizeRequest возвращает копию запроса с очищенными контактами, исходный запрос не меняется
func normalizeRequest(req *Request) *Request {
	if req == nil {
		return nil
	}
	normalized := *req
	normalized.Contact = normalizeContact(req.Contact)
	return &normalized
}

func normalizeContact(c domain.Contact) domain.Contact {
	return domain.Contact{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}
