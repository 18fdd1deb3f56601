package holds

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetBoarding-BookingService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/PetBoarding-BookingService/internal/infra/storage/hold"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/capacity"
)

// Service временные брони на время оформления заказа
//
// По умолчанию проверка вместимости и создание брони не атомарны: две сессии могут одновременно
// пройти проверку и обе получить бронь. В строгом режиме (policy.StrictCapacity) проверка и запись
// выполняются в одной сериализуемой транзакции.
type Service struct {
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	calculator   *capacity.Calculator
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис временных броней
func NewService(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	calculator *capacity.Calculator,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		calculator:   calculator,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Reserve проверяет вместимость на каждую дату и создает временную бронь
// Прежние брони той же сессии заменяются новой
func (s *Service) Reserve(ctx context.Context, req *ReserveRequest) (*domain.Hold, error) {
	if err := validateReserve(req); err != nil {
		s.logger.Warn("Reserve: validation failed: %v", err)
		return nil, err
	}

	dates := normalizeDates(req.Dates, s.policy.Location)
	s.logger.Info("Reserve: session=%s, service=%s, dates=%d, quantity=%d, strict=%t",
		req.SessionID, req.ServiceID, len(dates), req.Quantity, s.policy.StrictCapacity)

	var result *domain.Hold
	reserve := func(ctx context.Context) error {
		hold, err := s.checkAndCreate(ctx, req, dates)
		if err != nil {
			return err
		}
		result = hold
		return nil
	}

	var err error
	if s.policy.StrictCapacity {
		err = s.txManager.DoSerializable(ctx, reserve)
		if err != nil && bookingRepo.IsSerializationFailure(err) {
			s.logger.Warn("Reserve: serialization conflict for session=%s: %v", req.SessionID, err)
			err = fmt.Errorf("%w: concurrent reservation for the same dates", ErrCapacityConflict)
		}
	} else {
		err = reserve(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reserve: hold id=%s created for session=%s, expires at %s",
		result.ID, result.SessionID, result.ExpiresAt.Format(time.RFC3339))
	return result, nil
}

func (s *Service) checkAndCreate(ctx context.Context, req *ReserveRequest, dates []time.Time) (*domain.Hold, error) {
	now := s.timeProvider.Now()

	first, last := dates[0], dates[len(dates)-1]
	bookings, err := s.bookingRepo.Find(ctx, domain.BookingsFilter{
		StartDate: &first,
		EndDate:   &last,
		Statuses:  domain.ActiveStatuses,
	})
	if err != nil {
		s.logger.Error("Reserve: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	holds, err := s.holdRepo.FindActive(ctx, now)
	if err != nil {
		s.logger.Error("Reserve: failed to get holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get holds: %w", ErrInternal, err)
	}

	snapshot := capacity.Snapshot{
		Bookings:       bookings,
		Holds:          holds,
		ServiceID:      req.ServiceID,
		ExcludeSession: req.SessionID,
		Now:            now,
	}

	for _, d := range dates {
		day := s.calculator.ForDay(snapshot, d)
		if day.SlotsAvailable < req.Quantity {
			s.logger.Warn("Reserve: date %s has %d slots, requested %d",
				d.Format(domain.DateFormat), day.SlotsAvailable, req.Quantity)
			return nil, fmt.Errorf("%w: date %s has %d slots left, requested %d",
				ErrCapacityConflict, d.Format(domain.DateFormat), day.SlotsAvailable, req.Quantity)
		}
	}

	if _, err := s.holdRepo.DeleteBySession(ctx, req.SessionID); err != nil {
		s.logger.Error("Reserve: failed to drop previous holds of session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to drop previous holds: %w", ErrInternal, err)
	}

	hold := &domain.Hold{
		ID:        uuid.NewString(),
		SessionID: req.SessionID,
		ServiceID: req.ServiceID,
		Dates:     dates,
		Quantity:  req.Quantity,
		Status:    domain.HoldStatusTemporary,
		CreatedAt: now,
		ExpiresAt: now.Add(s.policy.HoldTTL),
	}

	created, err := s.holdRepo.Create(ctx, hold)
	if err != nil {
		s.logger.Error("Reserve: failed to create hold: %v", err)
		return nil, fmt.Errorf("%w: failed to create hold: %w", ErrInternal, err)
	}

	return created, nil
}

// Release удаляет временную бронь
// Повторное освобождение и освобождение несуществующей брони завершаются без ошибки
func (s *Service) Release(ctx context.Context, holdID string) error {
	if holdID == "" {
		return fmt.Errorf("%w: hold id is required", ErrInvalidInput)
	}

	err := s.holdRepo.Delete(ctx, holdID)
	if errors.Is(err, holdRepo.ErrHoldNotFound) {
		s.logger.Info("Release: hold id=%s already gone", holdID)
		return nil
	}
	if err != nil {
		s.logger.Error("Release: failed to delete hold id=%s: %v", holdID, err)
		return fmt.Errorf("%w: failed to delete hold: %v", ErrInternal, err)
	}

	s.logger.Info("Release: hold id=%s released", holdID)
	return nil
}

// ReleaseSession удаляет все брони сессии (после создания бронирования)
func (s *Service) ReleaseSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	n, err := s.holdRepo.DeleteBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("ReleaseSession: failed to delete holds of session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: failed to delete session holds: %v", ErrInternal, err)
	}

	s.logger.Info("ReleaseSession: released %d holds of session=%s", n, sessionID)
	return nil
}

// SweepExpired физически удаляет истёкшие брони
// Расчёт вместимости не зависит от того, как давно выполнялась очистка
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.holdRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("SweepExpired: failed to delete expired holds: %v", err)
		return 0, fmt.Errorf("%w: failed to delete expired holds: %v", ErrInternal, err)
	}

	if n > 0 {
		s.logger.Info("SweepExpired: removed %d expired holds", n)
	}
	return n, nil
}

// RunSweeper периодически очищает истёкшие брони до отмены контекста
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// ошибка уже залогирована, следующая попытка на следующем тике
			_, _ = s.SweepExpired(ctx)
		}
	}
}

func validateReserve(req *ReserveRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}
	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	if len(req.Dates) > domain.MaxStayDays {
		return fmt.Errorf("%w: at most %d dates per hold", ErrInvalidInput, domain.MaxStayDays)
	}
	if req.Quantity < 1 || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxQuantity)
	}
	for _, d := range req.Dates {
		if d.IsZero() {
			return fmt.Errorf("%w: empty date", ErrInvalidInput)
		}
	}
	return nil
}

// normalizeDates приводит даты к полуночи в часовом поясе пансиона, сортирует и убирает повторы
func normalizeDates(dates []time.Time, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}

	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		result = append(result, domain.InLocation(d, loc))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })

	unique := result[:0]
	for i, d := range result {
		if i == 0 || !d.Equal(unique[len(unique)-1]) {
			unique = append(unique, d)
		}
	}
	return unique
}
