package terms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
)

func TestGet_ReflectsPolicy(t *testing.T) {
	policy := domain.DefaultPolicy()
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	policy.Booking.Location = paris

	got := NewService(policy, logger.Nop()).Get()

	assert.Equal(t, "Europe/Paris", got.Timezone)
	assert.Equal(t, policy.Booking.Currency, got.Currency)
	assert.Equal(t, int(policy.Booking.MinLeadTime/time.Hour), got.MinLeadTimeHours)
	assert.Equal(t, int(policy.Booking.HoldTTL/time.Minute), got.HoldTTLMinutes)
	assert.Equal(t, policy.Capacity.DailyCeiling, got.Capacity.DailyCeiling)
	assert.Equal(t, policy.Capacity.LargeCeiling, got.Capacity.LargeCeiling)
	assert.Equal(t, policy.Capacity.FelinCeiling, got.Capacity.FelinCeiling)
	assert.Equal(t, policy.Cancellation.PartialRefundPercentage, got.Cancellation.PartialRefundPercentage)

	require.Len(t, got.Services, 4)
	byID := make(map[string]float64, len(got.Services))
	for _, s := range got.Services {
		byID[s.ServiceID] = s.DayRate
	}
	assert.Equal(t, policy.Tariffs.Flash.FullDayRate, byID["flash"])
	assert.Equal(t, policy.Tariffs.Sejour.DayRate, byID["sejour"])
	assert.Equal(t, policy.Tariffs.Felin.DayRate, byID["felin"])
	assert.Equal(t, policy.Tariffs.Default.StandardRate, byID[DefaultServiceID])
}

func TestGet_NilLocationFallsBackToUTC(t *testing.T) {
	policy := domain.DefaultPolicy()
	policy.Booking.Location = nil

	got := NewService(policy, logger.Nop()).Get()

	assert.Equal(t, "UTC", got.Timezone)
}
