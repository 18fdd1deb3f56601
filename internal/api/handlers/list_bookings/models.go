package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/PetBoarding-BookingService/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из query параметров email, limit
func ToServiceRequest(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Email: q.Get("email")}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("limit: %w", err)
		}
		req.Limit = limit
	}

	return req, nil
}
