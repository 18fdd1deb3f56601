package terms

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/terms/models"
	"github.com/m04kA/PetBoarding-BookingService/pkg/ptr"
)

// DefaultServiceID ключ тарифа для услуг без собственной строки в таблице
const DefaultServiceID = "default"

// Service отдаёт условия бронирования, собранные из неизменяемой политики
// Ответ строится один раз при создании сервиса
type Service struct {
	terms  *models.TermsResponse
	logger Logger
}

// NewService создает сервис условий бронирования
func NewService(policy domain.Policy, logger Logger) *Service {
	return &Service{
		terms:  buildTerms(policy),
		logger: logger,
	}
}

// Get возвращает условия бронирования
func (s *Service) Get() *models.TermsResponse {
	s.logger.Info("GetTerms: returning booking terms, services=%d", len(s.terms.Services))
	return s.terms
}

func buildTerms(p domain.Policy) *models.TermsResponse {
	loc := "UTC"
	if p.Booking.Location != nil {
		loc = p.Booking.Location.String()
	}

	t := p.Tariffs
	lateAfter := ptr.Ptr(t.LateDepartureThresholdHours)

	return &models.TermsResponse{
		Currency:         p.Booking.Currency,
		Timezone:         loc,
		MinLeadTimeHours: int(p.Booking.MinLeadTime / time.Hour),
		HoldTTLMinutes:   int(p.Booking.HoldTTL / time.Minute),
		Capacity: models.CapacityTerms{
			DailyCeiling: p.Capacity.DailyCeiling,
			LargeCeiling: p.Capacity.LargeCeiling,
			FelinCeiling: p.Capacity.FelinCeiling,
		},
		Cancellation: models.CancellationTerms{
			FreeCancellationDays:    p.Cancellation.FreeCancellationDays,
			PartialRefundPercentage: p.Cancellation.PartialRefundPercentage,
			NoRefundHours:           p.Cancellation.NoRefundHours,
		},
		Services: []models.ServiceTariffTerm{
			{
				ServiceID:       string(domain.ServiceFlash),
				DayRate:         t.Flash.FullDayRate,
				HalfDayRate:     ptr.Ptr(t.Flash.HalfDayRate),
				HalfDayMaxHours: ptr.Ptr(t.Flash.HalfDayMaxHours),
			},
			{
				ServiceID:              string(domain.ServiceSejour),
				DayRate:                t.Sejour.DayRate,
				MultiAnimalDiscountPct: ptr.Ptr(t.Sejour.MultiAnimalDiscountPct),
				MultiAnimalMinQuantity: ptr.Ptr(t.Sejour.MultiAnimalDiscountMinQty),
				LateDepartureFee:       ptr.Ptr(t.Sejour.LateDepartureFee),
				LateDepartureAfterHrs:  lateAfter,
			},
			{
				ServiceID:             string(domain.ServiceFelin),
				DayRate:               t.Felin.DayRate,
				LateDepartureFee:      ptr.Ptr(t.Felin.LateDepartureFee),
				LateDepartureAfterHrs: lateAfter,
			},
			{
				ServiceID: DefaultServiceID,
				DayRate:   t.Default.StandardRate,
				LargeRate: ptr.Ptr(t.Default.LargeRate),
			},
		},
	}
}
