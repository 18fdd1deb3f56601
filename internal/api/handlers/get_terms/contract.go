package get_terms

import (
	"github.com/m04kA/PetBoarding-BookingService/internal/service/terms/models"
)

type TermsService interface {
	Get() *models.TermsResponse
}
