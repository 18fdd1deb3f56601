package domain

import "time"

// Policy неизменяемый набор бизнес-правил, собирается один раз при старте
// и передаётся в конструкторы компонентов по значению
type Policy struct {
	Capacity     CapacityPolicy
	Cancellation CancellationPolicy
	Calendar     CalendarPolicy
	Tariffs      TariffTable
	Booking      BookingPolicy
}

// CapacityPolicy потолки вместимости на один календарный день
type CapacityPolicy struct {
	DailyCeiling int // общий потолок (собаки и прочие услуги)
	LargeCeiling int // подлимит бронирований с крупным животным
	FelinCeiling int // отдельный потолок для услуги felin
}

// CeilingFor возвращает потолок для услуги
func (p CapacityPolicy) CeilingFor(service ServiceID) int {
	if service == ServiceFelin {
		return p.FelinCeiling
	}
	return p.DailyCeiling
}

// CancellationPolicy параметры возврата при отмене
type CancellationPolicy struct {
	FreeCancellationDays    int // полный возврат, если до заезда не меньше стольких дней
	PartialRefundPercentage int // процент частичного возврата
	NoRefundHours           int // без возврата, если до заезда меньше стольких часов
}

// CalendarPolicy пороги отображения календаря
type CalendarPolicy struct {
	LimitedThreshold int // "limited", если свободных мест не больше порога
}

// BookingPolicy правила оформления бронирований
type BookingPolicy struct {
	MinLeadTime    time.Duration
	HoldTTL        time.Duration
	CancelTokenTTL time.Duration
	Location       *time.Location
	StrictCapacity bool // проверка вместимости и запись в одной сериализуемой транзакции
	Currency       string
}

// TariffTable тарифы по услугам
type TariffTable struct {
	Flash                       FlashTariff
	Sejour                      SejourTariff
	Felin                       FelinTariff
	Default                     DefaultTariff
	LateDepartureThresholdHours float64
}

type FlashTariff struct {
	HalfDayRate     float64
	FullDayRate     float64
	HalfDayMaxHours float64
}

type SejourTariff struct {
	DayRate                   float64
	MultiAnimalDiscountPct    float64
	MultiAnimalDiscountMinQty int
	LateDepartureFee          float64
}

type FelinTariff struct {
	DayRate          float64
	LateDepartureFee float64
}

type DefaultTariff struct {
	StandardRate float64
	LargeRate    float64
}

// DefaultPolicy значения по умолчанию
func DefaultPolicy() Policy {
	return Policy{
		Capacity: CapacityPolicy{
			DailyCeiling: DefaultDailyCeiling,
			LargeCeiling: DefaultLargeCeiling,
			FelinCeiling: DefaultFelinCeiling,
		},
		Cancellation: CancellationPolicy{
			FreeCancellationDays:    DefaultFreeCancellationDays,
			PartialRefundPercentage: DefaultPartialRefundPercentage,
			NoRefundHours:           DefaultNoRefundHours,
		},
		Calendar: CalendarPolicy{
			LimitedThreshold: DefaultLimitedThreshold,
		},
		Tariffs: TariffTable{
			Flash:                       FlashTariff{HalfDayRate: 15, FullDayRate: 25, HalfDayMaxHours: 4},
			Sejour:                      SejourTariff{DayRate: 25, MultiAnimalDiscountPct: 10, MultiAnimalDiscountMinQty: 2, LateDepartureFee: 10},
			Felin:                       FelinTariff{DayRate: 15, LateDepartureFee: 8},
			Default:                     DefaultTariff{StandardRate: 25, LargeRate: 30},
			LateDepartureThresholdHours: 2,
		},
		Booking: BookingPolicy{
			MinLeadTime:    DefaultMinLeadTime,
			HoldTTL:        DefaultHoldTTL,
			CancelTokenTTL: DefaultCancelTokenTTL,
			Location:       time.UTC,
			Currency:       DefaultCurrency,
		},
	}
}
