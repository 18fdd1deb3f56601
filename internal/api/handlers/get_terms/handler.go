package get_terms

import (
	"net/http"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
)

type Handler struct {
	service TermsService
}

func NewHandler(service TermsService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/terms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Get())
}
