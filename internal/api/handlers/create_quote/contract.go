package create_quote

import (
	"github.com/m04kA/PetBoarding-BookingService/internal/service/pricing"
)

type PricingEngine interface {
	Compute(req pricing.Request) (*pricing.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
