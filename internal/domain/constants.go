package domain

import "time"

// Default configuration values
const (
	DefaultDailyCeiling            = 5
	DefaultLargeCeiling            = 2
	DefaultFelinCeiling            = 8
	DefaultFreeCancellationDays    = 3
	DefaultPartialRefundPercentage = 50
	DefaultNoRefundHours           = 24
	DefaultLimitedThreshold        = 2
	DefaultMinLeadTime             = 24 * time.Hour
	DefaultHoldTTL                 = 15 * time.Minute
	DefaultCancelTokenTTL          = 90 * 24 * time.Hour
	DefaultCurrency                = "EUR"
)

// Business validation constants
const (
	MaxQuantity                 = 10
	MaxStayDays                 = 60
	MaxReasonLength             = 500
	DefaultRejectionReason      = "maximum capacity reached for the requested dates"
	DefaultCustomerListingLimit = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
