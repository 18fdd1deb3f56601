package create_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidQuote       = "невозможно рассчитать стоимость для указанных параметров"
)

type Handler struct {
	engine PricingEngine
	logger Logger
}

func NewHandler(engine PricingEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /quotes - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pricingReq, err := req.ToPricingRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	quote, err := h.engine.Compute(pricingReq)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("POST /quotes - Invalid quote input: service=%s: %v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidQuote)
			return
		}
		h.logger.Error("POST /quotes - Failed to compute quote: service=%s, error=%v", req.ServiceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /quotes - Quote computed: service=%s, days=%d, total=%.2f", req.ServiceID, quote.Days, quote.Total)
	handlers.RespondJSON(w, http.StatusOK, FromQuote(req.ServiceID, quote))
}
