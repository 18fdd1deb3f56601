package models

// TermsResponse публичные условия бронирования для страницы оформления
type TermsResponse struct {
	Currency         string              `json:"currency"`
	Timezone         string              `json:"timezone"`
	MinLeadTimeHours int                 `json:"minLeadTimeHours"`
	HoldTTLMinutes   int                 `json:"holdTtlMinutes"`
	Capacity         CapacityTerms       `json:"capacity"`
	Cancellation     CancellationTerms   `json:"cancellation"`
	Services         []ServiceTariffTerm `json:"services"`
}

// CapacityTerms потолки вместимости на день
type CapacityTerms struct {
	DailyCeiling int `json:"dailyCeiling"`
	LargeCeiling int `json:"largeCeiling"`
	FelinCeiling int `json:"felinCeiling"`
}

// CancellationTerms условия возврата при отмене
type CancellationTerms struct {
	FreeCancellationDays    int `json:"freeCancellationDays"`
	PartialRefundPercentage int `json:"partialRefundPercentage"`
	NoRefundHours           int `json:"noRefundHours"`
}

// ServiceTariffTerm тариф одной услуги
type ServiceTariffTerm struct {
	ServiceID              string   `json:"serviceId"`
	DayRate                float64  `json:"dayRate"`
	HalfDayRate            *float64 `json:"halfDayRate,omitempty"`
	HalfDayMaxHours        *float64 `json:"halfDayMaxHours,omitempty"`
	LargeRate              *float64 `json:"largeRate,omitempty"`
	MultiAnimalDiscountPct *float64 `json:"multiAnimalDiscountPct,omitempty"`
	MultiAnimalMinQuantity *int     `json:"multiAnimalMinQuantity,omitempty"`
	LateDepartureFee       *float64 `json:"lateDepartureFee,omitempty"`
	LateDepartureAfterHrs  *float64 `json:"lateDepartureAfterHours,omitempty"`
}
