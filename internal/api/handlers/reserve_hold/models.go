package reserve_hold

import (
	"fmt"
	"time"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/holds"
)

// ReserveHoldRequest HTTP request model
type ReserveHoldRequest struct {
	SessionID string   `json:"sessionId" validate:"required,max=128"`
	ServiceID string   `json:"serviceId,omitempty"`
	Dates     []string `json:"dates" validate:"required,min=1,max=60"`
	Quantity  int      `json:"quantity" validate:"min=1,max=10"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	ID        string   `json:"id"`
	SessionID string   `json:"sessionId"`
	ServiceID string   `json:"serviceId,omitempty"`
	Dates     []string `json:"dates"`
	Quantity  int      `json:"quantity"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"createdAt"`
	ExpiresAt string   `json:"expiresAt"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса (с парсингом дат)
func (r *ReserveHoldRequest) ToServiceRequest() (*holds.ReserveRequest, error) {
	dates := make([]time.Time, len(r.Dates))
	for i, s := range r.Dates {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("dates[%d]: %w", i, err)
		}
		dates[i] = d
	}

	return &holds.ReserveRequest{
		SessionID: r.SessionID,
		ServiceID: domain.ServiceID(r.ServiceID),
		Dates:     dates,
		Quantity:  r.Quantity,
	}, nil
}

// FromDomainHold конвертирует временную бронь в HTTP response
func FromDomainHold(h *domain.Hold) *HoldResponse {
	dates := make([]string, len(h.Dates))
	for i, d := range h.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	return &HoldResponse{
		ID:        h.ID,
		SessionID: h.SessionID,
		ServiceID: string(h.ServiceID),
		Dates:     dates,
		Quantity:  h.Quantity,
		Status:    string(h.Status),
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
		ExpiresAt: h.ExpiresAt.Format(time.RFC3339),
	}
}
