package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/check_availability"
	confirmBookingHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/create_booking"
	createQuoteHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/create_quote"
	getBookingHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/get_calendar"
	getTermsHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/get_terms"
	listBookingsHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/list_bookings"
	rejectBookingHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/reject_booking"
	releaseHoldHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/release_hold"
	reserveHoldHandler "github.com/m04kA/PetBoarding-BookingService/internal/api/handlers/reserve_hold"
	"github.com/m04kA/PetBoarding-BookingService/internal/api/middleware"
	"github.com/m04kA/PetBoarding-BookingService/internal/config"
	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetBoarding-BookingService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/PetBoarding-BookingService/internal/infra/storage/hold"
	"github.com/m04kA/PetBoarding-BookingService/internal/integrations/notification"
	"github.com/m04kA/PetBoarding-BookingService/internal/integrations/payment"
	"github.com/m04kA/PetBoarding-BookingService/internal/integrations/token"
	bookingsService "github.com/m04kA/PetBoarding-BookingService/internal/service/bookings"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/capacity"
	holdsService "github.com/m04kA/PetBoarding-BookingService/internal/service/holds"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/pricing"
	"github.com/m04kA/PetBoarding-BookingService/internal/service/refund"
	termsService "github.com/m04kA/PetBoarding-BookingService/internal/service/terms"
	checkAvailabilityUC "github.com/m04kA/PetBoarding-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/PetBoarding-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PetBoarding-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetBoarding-BookingService/pkg/logger"
	"github.com/m04kA/PetBoarding-BookingService/pkg/metrics"
	"github.com/m04kA/PetBoarding-BookingService/pkg/txmanager"
)

type bookingNotifier interface {
	Notify(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PetBoarding-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	policy := cfg.Policy()
	log.Info("Policy: ceilings daily=%d large=%d felin=%d, lead time=%s, hold ttl=%s, timezone=%s, strict=%t",
		policy.Capacity.DailyCeiling, policy.Capacity.LargeCeiling, policy.Capacity.FelinCeiling,
		policy.Booking.MinLeadTime, policy.Booking.HoldTTL, policy.Booking.Location, policy.Booking.StrictCapacity)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка БД: с метриками собирает длительность запросов и состояние пула, без них прозрачна
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Database.DBName)
	}

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	holdRepository := holdRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграции
	paymentGateway, err := payment.NewGateway(cfg.Payment.AccessToken, cfg.Payment.Mock, log)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway: %v", err)
	}
	paymentGateway.WithTimeout(time.Duration(cfg.Payment.Timeout) * time.Second)

	tokenSigner, err := token.NewSigner(cfg.Token.Secret, cfg.Token.Issuer)
	if err != nil {
		log.Fatal("Failed to initialize token signer: %v", err)
	}

	var notifier bookingNotifier
	if cfg.Kafka.Enabled {
		notifier = notification.NewKafkaNotifier(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
			log,
		)
		log.Info("Kafka notifier initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		notifier = notification.NewLogNotifier(log)
		log.Info("Kafka disabled, booking events are written to the log")
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Error("Failed to close notifier: %v", err)
		}
	}()

	// Доменные движки
	pricingEngine := pricing.NewEngine(policy.Tariffs)
	calculator := capacity.NewCalculator(policy.Capacity)
	refundPolicy := refund.NewPolicy(policy.Cancellation)

	// Инициализируем сервисы
	holdSvc := holdsService.NewService(
		holdRepository,
		bookingRepository,
		txMgr,
		calculator,
		policy.Booking,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		paymentGateway,
		tokenSigner,
		notifier,
		refundPolicy,
		policy.Booking,
		log,
	).WithListLimit(cfg.Booking.CustomerListLimit)
	termsSvc := termsService.NewService(policy, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		holdRepository,
		calculator,
		policy.Booking,
		policy.Calendar,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		holdRepository,
		holdSvc,
		notifier,
		txMgr,
		pricingEngine,
		calculator,
		policy.Booking,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(checkAvailabilityUseCase, log)
	createQuote := createQuoteHandler.NewHandler(pricingEngine, log)
	getTerms := getTermsHandler.NewHandler(termsSvc)
	reserveHold := reserveHoldHandler.NewHandler(holdSvc, log)
	releaseHold := releaseHoldHandler.NewHandler(holdSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.Admin.APIKey == "" {
		log.Warn("Admin API key is not configured, admin routes will reject every request")
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница оформления)
	// ============================================================

	// Проверка доступности дат и календарь месяца
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Условия бронирования и расчёт стоимости
	api.HandleFunc("/terms", getTerms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/quotes", createQuote.Handle).Methods(http.MethodPost)

	// Временные брони на время оформления
	api.HandleFunc("/holds", reserveHold.Handle).Methods(http.MethodPost)
	api.HandleFunc("/holds/{holdId}", releaseHold.Handle).Methods(http.MethodDelete)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена: клиент по токену из письма или администратор по ключу
	selfService := api.PathPrefix("").Subrouter()
	selfService.Use(middleware.DetectAdmin(cfg.Admin.APIKey))
	selfService.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.APIKey, log))

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/reject", rejectBooking.Handle).Methods(http.MethodPost)

	// Фоновая очистка истёкших временных броней
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweepInterval := time.Duration(cfg.Booking.HoldSweepInterval) * time.Second
	go holdSvc.RunSweeper(sweepCtx, sweepInterval)
	log.Info("Hold sweeper started (interval=%s)", sweepInterval)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopSweeper()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
