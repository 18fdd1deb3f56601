package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/capacity"
	"github.com/m04kA/PetBoarding-BookingService/pkg/ptr"
)

// UseCase use case проверки доступности дат
type UseCase struct {
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	calculator   *capacity.Calculator
	booking      domain.BookingPolicy
	calendar     domain.CalendarPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	calculator *capacity.Calculator,
	booking domain.BookingPolicy,
	calendar domain.CalendarPolicy,
	logger Logger,
) *UseCase {
	if booking.Location == nil {
		booking.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		calculator:   calculator,
		booking:      booking,
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет, можно ли принять quantity животных на каждый день диапазона
//
// Ответ всегда содержит загрузку по дням, в том числе при TOO_LATE. Нехватка мест и исчерпание
// подлимита крупных животных считаются независимо. Приоритет reasonCode: TOO_LATE,
// затем CAPACITY_EXCEEDED, затем LARGE_DOG_LIMIT.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	start := domain.InLocation(req.StartDate, uc.booking.Location)
	end := domain.InLocation(req.EndDate, uc.booking.Location)
	now := uc.timeProvider.Now()

	uc.logger.Info("CheckAvailability: service=%s, period=%s to %s, quantity=%d, large=%t",
		req.ServiceID, start.Format(domain.DateFormat), end.Format(domain.DateFormat), req.Quantity, req.HasLargeAnimal)

	days, err := uc.loadDays(ctx, req.ServiceID, req.SessionID, start, end, now)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Available:             true,
		PerDay:                days,
		CapacityViolations:    []time.Time{},
		LargeAnimalViolations: []time.Time{},
	}

	checkLarge := req.HasLargeAnimal && capacity.EnforcesLargeLimit(req.ServiceID)
	for _, day := range days {
		if day.SlotsAvailable < req.Quantity {
			resp.CapacityViolations = append(resp.CapacityViolations, day.Date)
		}
		if checkLarge && day.LargeCategorySlotsAvailable < 1 {
			resp.LargeAnimalViolations = append(resp.LargeAnimalViolations, day.Date)
		}
	}

	switch {
	case isTooLate(start, now, uc.booking.MinLeadTime):
		uc.logger.Info("CheckAvailability: start %s is within lead time %s", start.Format(domain.DateFormat), uc.booking.MinLeadTime)
		resp.Available = false
		resp.ReasonCode = ptr.Ptr(ReasonTooLate)
	case len(resp.CapacityViolations) > 0:
		resp.Available = false
		resp.ReasonCode = ptr.Ptr(ReasonCapacityExceeded)
	case len(resp.LargeAnimalViolations) > 0:
		resp.Available = false
		resp.ReasonCode = ptr.Ptr(ReasonLargeDogLimit)
	}

	uc.logger.Info("CheckAvailability: available=%t, capacity violations=%d, large violations=%d",
		resp.Available, len(resp.CapacityViolations), len(resp.LargeAnimalViolations))

	return resp, nil
}

// Calendar возвращает загрузку каждого дня месяца со статусом для отображения
func (uc *UseCase) Calendar(ctx context.Context, req *CalendarRequest) (*CalendarResponse, error) {
	if err := validateCalendarRequest(req); err != nil {
		uc.logger.Warn("Calendar: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("Calendar: service=%s, month=%d, year=%d", req.ServiceID, req.Month, req.Year)

	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, uc.booking.Location)
	last := first.AddDate(0, 1, -1)

	days, err := uc.loadDays(ctx, req.ServiceID, "", first, last, uc.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	return &CalendarResponse{
		Month:     req.Month,
		Year:      req.Year,
		ServiceID: req.ServiceID,
		Days:      days,
	}, nil
}

// loadDays читает бронирования и активные временные брони и считает загрузку по дням
func (uc *UseCase) loadDays(
	ctx context.Context,
	serviceID domain.ServiceID,
	sessionID string,
	start, end, now time.Time,
) ([]DayAvailability, error) {
	bookings, err := uc.bookingRepo.FindInRange(ctx, start, end, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	holds, err := uc.holdRepo.FindActive(ctx, now)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
	}

	snapshot := capacity.Snapshot{
		Bookings:       bookings,
		Holds:          holds,
		ServiceID:      serviceID,
		ExcludeSession: sessionID,
		Now:            now,
	}

	perDay := uc.calculator.ForRange(snapshot, start, end)
	result := make([]DayAvailability, 0, len(perDay))
	for i := range perDay {
		result = append(result, toDayAvailability(&perDay[i], uc.calendar.LimitedThreshold))
	}
	return result, nil
}

func toDayAvailability(c *domain.DayCapacity, limitedThreshold int) DayAvailability {
	return DayAvailability{
		Date:                        c.Date,
		TotalRequested:              c.TotalRequested,
		HeldCount:                   c.HeldCount,
		LargeCategoryCount:          c.LargeCategoryCount,
		PendingCount:                c.PendingCount,
		ConfirmedCount:              c.ConfirmedCount,
		SlotsAvailable:              c.SlotsAvailable,
		LargeCategorySlotsAvailable: c.LargeCategorySlotsAvailable,
		Status:                      c.Display(limitedThreshold),
	}
}
