package reserve_hold

import (
	"context"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/holds"
)

type HoldService interface {
	Reserve(ctx context.Context, req *holds.ReserveRequest) (*domain.Hold, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
