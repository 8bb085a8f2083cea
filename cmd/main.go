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

	advanceStatusHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/advance_status"
	cancelBookingHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/cancel_booking"
	changeDeliveryHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/change_delivery"
	checkAvailabilityHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/check_availability"
	claimAssignmentHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/claim_assignment"
	countBookingsHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/count_bookings"
	createBookingHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/create_booking"
	extendBookingHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/extend_booking"
	getBookingHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/get_booking"
	getCancellationPolicyHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/get_cancellation_policy"
	getCancellationQuoteHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/get_cancellation_quote"
	listAssignmentsHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/list_assignments"
	listBookingsHandler "github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-RentalDispatchService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalDispatchService/internal/config"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/events"
	assignmentRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/assignment"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/sequence"
	fleetServiceClient "github.com/m04kA/SMC-RentalDispatchService/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-RentalDispatchService/internal/integrations/notifygateway"
	userServiceClient "github.com/m04kA/SMC-RentalDispatchService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/cancellation"
	cancelBookingUC "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/cancel_booking"
	claimAssignmentUC "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/claim_assignment"
	createBookingUC "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/create_booking"
	extendBookingUC "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/extend_booking"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/logger"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/metrics"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v, ok := os.LookupEnv("CONFIG_PATH"); ok && v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
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

	log.Info("Starting SMC-RentalDispatchService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики. При выключенных метриках collector остаётся nil: его методы безопасны для nil
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	assignmentRepository := assignmentRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)
	bookingNumbers := sequence.NewGenerator(wrappedDB, sequence.DefaultBookingSequence)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграционные клиенты
	fleetClient := fleetServiceClient.NewClient(
		cfg.FleetService.URL,
		time.Duration(cfg.FleetService.Timeout)*time.Second,
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (FleetService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.FleetService.URL, cfg.FleetService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Доменные события: шлюз уведомлений или только лог
	var subscriber events.Subscriber = events.LogSubscriber{Logger: log}
	if cfg.Notifications.Enabled {
		subscriber = notifygateway.NewClient(
			cfg.Notifications.URL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			cfg.Notifications.RatePerSec,
			cfg.Notifications.Burst,
			log,
		)
		log.Info("Notification gateway enabled (url=%s, rate=%.1f/s, burst=%d)",
			cfg.Notifications.URL, cfg.Notifications.RatePerSec, cfg.Notifications.Burst)
	}
	publisher := events.NewPublisher(
		subscriber,
		cfg.Notifications.QueueSize,
		cfg.Notifications.Workers,
		time.Duration(cfg.Notifications.Timeout)*time.Second,
		metricsCollector,
		log,
	)

	// Сервисы
	resolver := availability.NewResolver(bookingRepository, domain.BoundaryPolicy(cfg.Availability.Boundary), log)
	cancellationSvc := cancellation.NewService(
		policyRepository,
		bookingRepository,
		domain.LateCancellationPolicy(cfg.Cancellation.LatePolicy),
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		assignmentRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	log.Info("Services initialized (boundary=%s, late_policy=%s)",
		cfg.Availability.Boundary, cfg.Cancellation.LatePolicy)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		bookingNumbers,
		resolver,
		fleetClient,
		userClient,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	extendBookingUseCase := extendBookingUC.NewUseCase(
		bookingRepository,
		resolver,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		cancellationSvc,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	claimAssignmentUseCase := claimAssignmentUC.NewUseCase(
		bookingRepository,
		assignmentRepository,
		fleetClient,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(resolver, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	countBookings := countBookingsHandler.NewHandler(bookingSvc, log)
	extendBooking := extendBookingHandler.NewHandler(extendBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getCancellationQuote := getCancellationQuoteHandler.NewHandler(cancellationSvc, log)
	advanceStatus := advanceStatusHandler.NewHandler(bookingSvc, log)
	changeDelivery := changeDeliveryHandler.NewHandler(bookingSvc, log)
	claimAssignment := claimAssignmentHandler.NewHandler(claimAssignmentUseCase, log)
	listAssignments := listAssignmentsHandler.NewHandler(bookingSvc, log)
	getCancellationPolicy := getCancellationPolicyHandler.NewHandler(cancellationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Автомобили ---
	api.HandleFunc("/cars/{carId:[0-9]+}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/count", countBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}/extend", extendBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}/cancellation-quote", getCancellationQuote.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}/status", advanceStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}/delivery", changeDelivery.Handle).Methods(http.MethodPatch)

	// --- Назначения агентов ---
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}/assignments", claimAssignment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingNumber:[0-9]+}/assignments", listAssignments.Handle).Methods(http.MethodGet)

	// --- Политика отмены компании ---
	api.HandleFunc("/companies/{companyId:[0-9]+}/cancellation-policy", getCancellationPolicy.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся доставки событий, поставленных в очередь до остановки сервера
	if err := publisher.Close(shutdownCtx); err != nil {
		log.Error("Event publisher did not drain: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
