package holds

import (
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// ReserveRequest запрос на временную бронь
type ReserveRequest struct {
	SessionID string
	ServiceID domain.ServiceID
	Dates     []time.Time
	Quantity  int
}
