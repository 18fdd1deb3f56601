package refund

import (
	"math"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// Policy считает сумму возврата при отмене
type Policy struct {
	cfg domain.CancellationPolicy
}

// NewPolicy создает политику возврата
func NewPolicy(cfg domain.CancellationPolicy) *Policy {
	return &Policy{cfg: cfg}
}

// RefundFor возвращает сумму возврата для оплаченного бронирования
//
// Пороги считаются независимо: дни и часы до заезда округляются вверх каждый по своей шкале.
// Полный возврат, если дней не меньше FreeCancellationDays; частичный, если часов не меньше NoRefundHours;
// иначе ноль. Результат округлён до центов и не превышает total.
func (p *Policy) RefundFor(total float64, stayStart, now time.Time) float64 {
	if total <= 0 {
		return 0
	}

	switch pct := p.Percentage(stayStart, now); {
	case pct >= 100:
		return total
	case pct <= 0:
		return 0
	default:
		cents := math.Round(total * 100)
		refund := math.Round(cents*float64(pct)/100) / 100
		return math.Min(refund, total)
	}
}

// Percentage возвращает процент возврата для тех же порогов
func (p *Policy) Percentage(stayStart, now time.Time) int {
	until := stayStart.Sub(now)
	switch {
	case int(math.Ceil(until.Hours()/24)) >= p.cfg.FreeCancellationDays:
		return 100
	case int(math.Ceil(until.Hours())) >= p.cfg.NoRefundHours:
		return p.cfg.PartialRefundPercentage
	default:
		return 0
	}
}
