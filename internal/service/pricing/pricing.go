package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/pkg/types"
)

// Request входные данные расчёта стоимости
type Request struct {
	ServiceID     domain.ServiceID
	StartDate     time.Time
	EndDate       time.Time
	Quantity      int
	ArrivalTime   types.TimeString
	DepartureTime types.TimeString
	// FullDay явный признак полного дня для flash, когда время заезда/выезда не указано
	FullDay bool
	Sizes   []domain.SizeCategory
}

// Quote результат расчёта
type Quote struct {
	Total         float64
	RatePerUnit   float64
	Days          int
	SurchargeNote string
}

// Engine считает стоимость по таблице тарифов
// Все суммы считаются в минимальных единицах валюты (центах); проценты округляются
// половиной от нуля (math.Round), итог переводится обратно с двумя знаками
type Engine struct {
	tariffs domain.TariffTable
}

// NewEngine создает движок расчёта стоимости
func NewEngine(tariffs domain.TariffTable) *Engine {
	return &Engine{tariffs: tariffs}
}

// Compute рассчитывает стоимость. Чистая функция: не читает часы и хранилище
func (e *Engine) Compute(req Request) (*Quote, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	days := domain.DayCount(req.StartDate, req.EndDate)

	switch req.ServiceID {
	case domain.ServiceFlash:
		return e.flash(req, days)
	case domain.ServiceSejour:
		return e.sejour(req, days)
	case domain.ServiceFelin:
		return e.felin(req, days)
	default:
		return e.byDefault(req, days)
	}
}

// flash: полдня, если пребывание не дольше HalfDayMaxHours, иначе полный день
func (e *Engine) flash(req Request, days int) (*Quote, error) {
	if days != 1 {
		return nil, domain.NewValidationError("service %s is a single-day service, got %d days", req.ServiceID, days)
	}

	t := e.tariffs.Flash
	var (
		rate float64
		note string
	)

	if req.ArrivalTime.IsZero() || req.DepartureTime.IsZero() {
		if !req.FullDay {
			return nil, domain.NewValidationError("arrival and departure times are required for service %s", req.ServiceID)
		}
		rate = t.FullDayRate
		note = "full day applied: arrival/departure times not provided"
	} else {
		d, err := req.DepartureTime.Sub(req.ArrivalTime)
		if err != nil {
			return nil, domain.NewValidationError("invalid arrival/departure time: %v", err)
		}
		if d <= 0 {
			return nil, domain.NewValidationError("departure %s must be after arrival %s", req.DepartureTime, req.ArrivalTime)
		}
		if d.Hours() <= t.HalfDayMaxHours {
			rate = t.HalfDayRate
		} else {
			rate = t.FullDayRate
		}
	}

	total := toCents(rate) * int64(req.Quantity)
	return newQuote(total, rate, days, note), nil
}

// sejour: тариф × дни × количество; со второго животного скидка на стоимость одного животного
func (e *Engine) sejour(req Request, days int) (*Quote, error) {
	t := e.tariffs.Sejour
	unitCost := toCents(t.DayRate) * int64(days)
	total := unitCost * int64(req.Quantity)

	notes := make([]string, 0, 2)
	if t.MultiAnimalDiscountMinQty > 0 && req.Quantity >= t.MultiAnimalDiscountMinQty {
		discount := percentOf(unitCost, t.MultiAnimalDiscountPct)
		total -= discount
		notes = append(notes, fmt.Sprintf("multi-animal discount: -%s", formatCents(discount)))
	}

	late, note, err := e.lateDeparture(req, t.LateDepartureFee)
	if err != nil {
		return nil, err
	}
	total += late
	if note != "" {
		notes = append(notes, note)
	}

	return newQuote(total, t.DayRate, days, strings.Join(notes, "; ")), nil
}

// felin: тариф × дни × количество, без скидки, со своей надбавкой за поздний выезд
func (e *Engine) felin(req Request, days int) (*Quote, error) {
	t := e.tariffs.Felin
	total := toCents(t.DayRate) * int64(days) * int64(req.Quantity)

	late, note, err := e.lateDeparture(req, t.LateDepartureFee)
	if err != nil {
		return nil, err
	}

	return newQuote(total+late, t.DayRate, days, note), nil
}

// byDefault: ставка зависит от наличия крупного животного
func (e *Engine) byDefault(req Request, days int) (*Quote, error) {
	t := e.tariffs.Default
	rate := t.StandardRate
	for _, size := range req.Sizes {
		if size == domain.SizeLarge {
			rate = t.LargeRate
			break
		}
	}

	total := toCents(rate) * int64(days) * int64(req.Quantity)
	return newQuote(total, rate, days, ""), nil
}

// lateDeparture надбавка, если выезд позже заезда больше чем на порог (по времени суток)
func (e *Engine) lateDeparture(req Request, fee float64) (int64, string, error) {
	if req.ArrivalTime.IsZero() || req.DepartureTime.IsZero() {
		return 0, "", nil
	}

	d, err := req.DepartureTime.Sub(req.ArrivalTime)
	if err != nil {
		return 0, "", domain.NewValidationError("invalid arrival/departure time: %v", err)
	}

	if d.Hours() <= e.tariffs.LateDepartureThresholdHours {
		return 0, "", nil
	}

	cents := toCents(fee)
	return cents, fmt.Sprintf("late departure surcharge: +%s", formatCents(cents)), nil
}

func validateRequest(req Request) error {
	if req.ServiceID == "" {
		return domain.NewValidationError("serviceId is required")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return domain.NewValidationError("startDate and endDate are required")
	}
	if domain.DateOnly(req.EndDate).Before(domain.DateOnly(req.StartDate)) {
		return domain.NewValidationError("endDate must not be before startDate")
	}
	if req.Quantity < 1 || req.Quantity > domain.MaxQuantity {
		return domain.NewValidationError("quantity must be between 1 and %d", domain.MaxQuantity)
	}
	if !req.ArrivalTime.IsZero() {
		if err := req.ArrivalTime.Validate(); err != nil {
			return domain.NewValidationError("arrivalTime: %v", err)
		}
	}
	if !req.DepartureTime.IsZero() {
		if err := req.DepartureTime.Validate(); err != nil {
			return domain.NewValidationError("departureTime: %v", err)
		}
	}
	return nil
}

func newQuote(totalCents int64, rate float64, days int, note string) *Quote {
	return &Quote{
		Total:         FromCents(totalCents),
		RatePerUnit:   FromCents(toCents(rate)),
		Days:          days,
		SurchargeNote: note,
	}
}

// ToMinorUnits переводит сумму в минимальные единицы валюты (×100 с округлением)
func ToMinorUnits(amount float64) int64 {
	return toCents(amount)
}

// FromCents переводит центы в десятичную сумму
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// RoundMoney округляет сумму до двух знаков (половина от нуля)
func RoundMoney(amount float64) float64 {
	return FromCents(toCents(amount))
}

// PercentOf возвращает pct процентов от суммы, округлённые до центов
func PercentOf(amount float64, pct float64) float64 {
	return FromCents(percentOf(toCents(amount), pct))
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func percentOf(cents int64, pct float64) int64 {
	return int64(math.Round(float64(cents) * pct / 100))
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
