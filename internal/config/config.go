package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

// ErrInvalidConfig возвращается, если значения конфигурации противоречивы
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Admin        AdminConfig        `toml:"admin"`
	Booking      BookingConfig      `toml:"booking"`
	Capacity     CapacityConfig     `toml:"capacity"`
	Calendar     CalendarConfig     `toml:"calendar"`
	Cancellation CancellationConfig `toml:"cancellation"`
	Tariffs      TariffsConfig      `toml:"tariffs"`
	Payment      PaymentConfig      `toml:"payment"`
	Token        TokenConfig        `toml:"token"`
	Kafka        KafkaConfig        `toml:"kafka"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AdminConfig struct {
	APIKey string `toml:"api_key"`
}

type BookingConfig struct {
	Timezone           string `toml:"timezone"`
	MinLeadTimeHours   int    `toml:"min_lead_time_hours"`
	HoldTTLMinutes     int    `toml:"hold_ttl_minutes"`
	HoldSweepInterval  int    `toml:"hold_sweep_interval_seconds"`
	CancelTokenTTLDays int    `toml:"cancel_token_ttl_days"`
	StrictCapacity     bool   `toml:"strict_capacity"`
	Currency           string `toml:"currency"`
	CustomerListLimit  uint64 `toml:"customer_list_limit"`
}

type CapacityConfig struct {
	DailyCeiling int `toml:"daily_ceiling"`
	LargeCeiling int `toml:"large_ceiling"`
	FelinCeiling int `toml:"felin_ceiling"`
}

type CalendarConfig struct {
	LimitedThreshold int `toml:"limited_threshold"`
}

type CancellationConfig struct {
	FreeCancellationDays    int `toml:"free_cancellation_days"`
	PartialRefundPercentage int `toml:"partial_refund_percentage"`
	NoRefundHours           int `toml:"no_refund_hours"`
}

type TariffsConfig struct {
	LateDepartureThresholdHours float64 `toml:"late_departure_threshold_hours"`

	FlashHalfDayRate     float64 `toml:"flash_half_day_rate"`
	FlashFullDayRate     float64 `toml:"flash_full_day_rate"`
	FlashHalfDayMaxHours float64 `toml:"flash_half_day_max_hours"`

	SejourDayRate                float64 `toml:"sejour_day_rate"`
	SejourMultiAnimalDiscountPct float64 `toml:"sejour_multi_animal_discount_pct"`
	SejourMultiAnimalMinQuantity int     `toml:"sejour_multi_animal_min_quantity"`
	SejourLateDepartureFee       float64 `toml:"sejour_late_departure_fee"`

	FelinDayRate          float64 `toml:"felin_day_rate"`
	FelinLateDepartureFee float64 `toml:"felin_late_departure_fee"`

	DefaultStandardRate float64 `toml:"default_standard_rate"`
	DefaultLargeRate    float64 `toml:"default_large_rate"`
}

type PaymentConfig struct {
	AccessToken string `toml:"access_token"`
	Mock        bool   `toml:"mock"`
	Timeout     int    `toml:"timeout"`
}

type TokenConfig struct {
	Secret string `toml:"secret"`
	Issuer string `toml:"issuer"`
}

type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// Load читает конфигурацию из TOML-файла, подгружает .env и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах и утилитах)
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv секреты из окружения перекрывают значения из файла
func (c *Config) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"DB_PASSWORD", &c.Database.Password},
		{"MERCADOPAGO_ACCESS_TOKEN", &c.Payment.AccessToken},
		{"TOKEN_SECRET", &c.Token.Secret},
		{"ADMIN_API_KEY", &c.Admin.APIKey},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.target = v
		}
	}
}

func (c *Config) applyDefaults() {
	def := domain.DefaultPolicy()

	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")
	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "petboarding_booking_service")

	setString(&c.Booking.Timezone, "Europe/Paris")
	setInt(&c.Booking.MinLeadTimeHours, int(domain.DefaultMinLeadTime/time.Hour))
	setInt(&c.Booking.HoldTTLMinutes, int(domain.DefaultHoldTTL/time.Minute))
	setInt(&c.Booking.HoldSweepInterval, 60)
	setInt(&c.Booking.CancelTokenTTLDays, int(domain.DefaultCancelTokenTTL/(24*time.Hour)))
	setString(&c.Booking.Currency, domain.DefaultCurrency)
	if c.Booking.CustomerListLimit == 0 {
		c.Booking.CustomerListLimit = domain.DefaultCustomerListingLimit
	}

	setInt(&c.Capacity.DailyCeiling, def.Capacity.DailyCeiling)
	setInt(&c.Capacity.LargeCeiling, def.Capacity.LargeCeiling)
	setInt(&c.Capacity.FelinCeiling, def.Capacity.FelinCeiling)
	setInt(&c.Calendar.LimitedThreshold, def.Calendar.LimitedThreshold)

	setInt(&c.Cancellation.FreeCancellationDays, def.Cancellation.FreeCancellationDays)
	setInt(&c.Cancellation.PartialRefundPercentage, def.Cancellation.PartialRefundPercentage)
	setInt(&c.Cancellation.NoRefundHours, def.Cancellation.NoRefundHours)

	t := &c.Tariffs
	setFloat(&t.LateDepartureThresholdHours, def.Tariffs.LateDepartureThresholdHours)
	setFloat(&t.FlashHalfDayRate, def.Tariffs.Flash.HalfDayRate)
	setFloat(&t.FlashFullDayRate, def.Tariffs.Flash.FullDayRate)
	setFloat(&t.FlashHalfDayMaxHours, def.Tariffs.Flash.HalfDayMaxHours)
	setFloat(&t.SejourDayRate, def.Tariffs.Sejour.DayRate)
	setFloat(&t.SejourMultiAnimalDiscountPct, def.Tariffs.Sejour.MultiAnimalDiscountPct)
	setInt(&t.SejourMultiAnimalMinQuantity, def.Tariffs.Sejour.MultiAnimalDiscountMinQty)
	setFloat(&t.SejourLateDepartureFee, def.Tariffs.Sejour.LateDepartureFee)
	setFloat(&t.FelinDayRate, def.Tariffs.Felin.DayRate)
	setFloat(&t.FelinLateDepartureFee, def.Tariffs.Felin.LateDepartureFee)
	setFloat(&t.DefaultStandardRate, def.Tariffs.Default.StandardRate)
	setFloat(&t.DefaultLargeRate, def.Tariffs.Default.LargeRate)

	setInt(&c.Payment.Timeout, 10)
	setString(&c.Token.Issuer, "petboarding-booking-service")
	setString(&c.Kafka.Topic, "booking-events")
	setInt(&c.Kafka.WriteTimeout, 5)
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var problems []string

	if c.Capacity.DailyCeiling <= 0 || c.Capacity.LargeCeiling <= 0 || c.Capacity.FelinCeiling <= 0 {
		problems = append(problems, "capacity ceilings must be positive")
	}
	if c.Capacity.LargeCeiling > c.Capacity.DailyCeiling {
		problems = append(problems, "capacity.large_ceiling must not exceed capacity.daily_ceiling")
	}
	if c.Calendar.LimitedThreshold < 0 {
		problems = append(problems, "calendar.limited_threshold must not be negative")
	}
	if p := c.Cancellation.PartialRefundPercentage; p < 0 || p > 100 {
		problems = append(problems, "cancellation.partial_refund_percentage must be within 0..100")
	}
	if c.Cancellation.FreeCancellationDays < 0 || c.Cancellation.NoRefundHours < 0 {
		problems = append(problems, "cancellation thresholds must not be negative")
	}
	if p := c.Tariffs.SejourMultiAnimalDiscountPct; p < 0 || p > 100 {
		problems = append(problems, "tariffs.sejour_multi_animal_discount_pct must be within 0..100")
	}
	if c.Booking.MinLeadTimeHours < 0 || c.Booking.HoldTTLMinutes <= 0 {
		problems = append(problems, "booking lead time must not be negative and hold ttl must be positive")
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("booking.timezone %q: %v", c.Booking.Timezone, err))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Policy собирает неизменяемый набор бизнес-правил
func (c *Config) Policy() domain.Policy {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		loc = time.UTC
	}

	t := c.Tariffs
	return domain.Policy{
		Capacity: domain.CapacityPolicy{
			DailyCeiling: c.Capacity.DailyCeiling,
			LargeCeiling: c.Capacity.LargeCeiling,
			FelinCeiling: c.Capacity.FelinCeiling,
		},
		Cancellation: domain.CancellationPolicy{
			FreeCancellationDays:    c.Cancellation.FreeCancellationDays,
			PartialRefundPercentage: c.Cancellation.PartialRefundPercentage,
			NoRefundHours:           c.Cancellation.NoRefundHours,
		},
		Calendar: domain.CalendarPolicy{
			LimitedThreshold: c.Calendar.LimitedThreshold,
		},
		Tariffs: domain.TariffTable{
			Flash: domain.FlashTariff{
				HalfDayRate:     t.FlashHalfDayRate,
				FullDayRate:     t.FlashFullDayRate,
				HalfDayMaxHours: t.FlashHalfDayMaxHours,
			},
			Sejour: domain.SejourTariff{
				DayRate:                   t.SejourDayRate,
				MultiAnimalDiscountPct:    t.SejourMultiAnimalDiscountPct,
				MultiAnimalDiscountMinQty: t.SejourMultiAnimalMinQuantity,
				LateDepartureFee:          t.SejourLateDepartureFee,
			},
			Felin: domain.FelinTariff{
				DayRate:          t.FelinDayRate,
				LateDepartureFee: t.FelinLateDepartureFee,
			},
			Default: domain.DefaultTariff{
				StandardRate: t.DefaultStandardRate,
				LargeRate:    t.DefaultLargeRate,
			},
			LateDepartureThresholdHours: t.LateDepartureThresholdHours,
		},
		Booking: domain.BookingPolicy{
			MinLeadTime:    time.Duration(c.Booking.MinLeadTimeHours) * time.Hour,
			HoldTTL:        time.Duration(c.Booking.HoldTTLMinutes) * time.Minute,
			CancelTokenTTL: time.Duration(c.Booking.CancelTokenTTLDays) * 24 * time.Hour,
			Location:       loc,
			StrictCapacity: c.Booking.StrictCapacity,
			Currency:       c.Booking.Currency,
		},
	}
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
