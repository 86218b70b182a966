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

	assignPackageHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/assign_package"
	cancelBookingHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_admin_bookings"
	getAvailableSlotsHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_available_slots"
	getBalanceHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_balance"
	getBookingHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_booking"
	getCancellationStatsHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_cancellation_stats"
	getRoomHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_room"
	getUserBookingsHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/get_user_bookings"
	listRoomsHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/list_rooms"
	rescheduleBookingHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/reschedule_booking"
	reviewBookingHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/review_booking"
	uploadReceiptHandler "github.com/Oso5408/ofcoz-booking/internal/api/handlers/upload_receipt"
	"github.com/Oso5408/ofcoz-booking/internal/api/middleware"
	"github.com/Oso5408/ofcoz-booking/internal/config"
	"github.com/Oso5408/ofcoz-booking/internal/infra/cache/submitlock"
	balanceRepo "github.com/Oso5408/ofcoz-booking/internal/infra/storage/balance"
	bookingRepo "github.com/Oso5408/ofcoz-booking/internal/infra/storage/booking"
	roomRepo "github.com/Oso5408/ofcoz-booking/internal/infra/storage/room"
	"github.com/Oso5408/ofcoz-booking/internal/integrations/mailer"
	"github.com/Oso5408/ofcoz-booking/internal/integrations/notify"
	"github.com/Oso5408/ofcoz-booking/internal/integrations/queue"
	"github.com/Oso5408/ofcoz-booking/internal/integrations/receipts"
	bookingsService "github.com/Oso5408/ofcoz-booking/internal/service/bookings"
	conflictsService "github.com/Oso5408/ofcoz-booking/internal/service/conflicts"
	policyService "github.com/Oso5408/ofcoz-booking/internal/service/policy"
	roomsService "github.com/Oso5408/ofcoz-booking/internal/service/rooms"
	assignPackageUC "github.com/Oso5408/ofcoz-booking/internal/usecase/assign_package"
	cancelBookingUC "github.com/Oso5408/ofcoz-booking/internal/usecase/cancel_booking"
	createBookingUC "github.com/Oso5408/ofcoz-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/Oso5408/ofcoz-booking/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/Oso5408/ofcoz-booking/internal/usecase/reschedule_booking"
	reviewBookingUC "github.com/Oso5408/ofcoz-booking/internal/usecase/review_booking"
	uploadReceiptUC "github.com/Oso5408/ofcoz-booking/internal/usecase/upload_receipt"
	"github.com/Oso5408/ofcoz-booking/pkg/dbmetrics"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
	"github.com/Oso5408/ofcoz-booking/pkg/metrics"
	"github.com/Oso5408/ofcoz-booking/pkg/simpletxmanager"
	"github.com/Oso5408/ofcoz-booking/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ofcoz-booking...")

	hours, err := cfg.Venue.OperatingHours()
	if err != nil {
		log.Fatal("Invalid venue configuration: %v", err)
	}
	log.Info("Venue hours %02d:00-%02d:00 %s, step=%dm, notice=%dm",
		hours.OpenHour, hours.CloseHour, hours.Location, hours.StepMinutes, hours.MinNoticeMinutes)

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var (
		executor dbmetrics.DBExecutor
		txMgr    TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	roomRepository := roomRepo.NewRepository(executor)
	balanceRepository := balanceRepo.NewRepository(executor)

	// Duplicate-submit guard
	var guard interface {
		Acquire(ctx context.Context, key string) (bool, func(), error)
	} = submitlock.Noop{}

	if cfg.Redis.Enabled {
		redisClient, err := submitlock.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		guard = submitlock.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		log.Info("Submit guard backed by redis at %s", cfg.Redis.Addr)
	}

	// Notification sinks
	var sinks []notify.Sink

	if cfg.RabbitMQ.Enabled {
		publisher, err := queue.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
		log.Info("Booking events published to queue %s", cfg.RabbitMQ.Queue)
	}

	if cfg.Email.Enabled {
		sinks = append(sinks, mailer.NewClient(
			cfg.Email.URL,
			cfg.Email.APIKey,
			cfg.Email.Operator,
			time.Duration(cfg.Email.Timeout)*time.Second,
			log,
		))
		log.Info("Booking emails sent through %s (timeout=%ds)", cfg.Email.URL, cfg.Email.Timeout)
	}

	var recorder notify.Recorder
	if metricsCollector != nil {
		recorder = metricsCollector
	}
	notifier := notify.NewFanout(recorder, log, sinks...)

	receiptStorage, err := receipts.NewSupabase(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.ReceiptBucket, log)
	if err != nil {
		log.Fatal("Failed to initialize receipt storage: %v", err)
	}

	// Services
	bookingSvc := bookingsService.NewService(bookingRepository, balanceRepository, log)
	conflictSvc := conflictsService.NewService(bookingRepository, log)
	policySvc := policyService.NewService(bookingRepository, hours.Location, log)
	roomSvc := roomsService.NewService(roomRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		balanceRepository,
		roomRepository,
		conflictSvc,
		guard,
		notifier,
		txMgr,
		hours,
		cfg.Pricing.Pricing(),
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		balanceRepository,
		roomRepository,
		policySvc,
		guard,
		notifier,
		txMgr,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		balanceRepository,
		roomRepository,
		conflictSvc,
		guard,
		notifier,
		txMgr,
		hours,
		cfg.Pricing.Pricing(),
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		roomRepository,
		hours,
		log,
	)

	uploadReceiptUseCase := uploadReceiptUC.NewUseCase(
		bookingRepository,
		roomRepository,
		receiptStorage,
		notifier,
		cfg.Supabase.MaxReceiptBytes(),
		log,
	)

	reviewBookingUseCase := reviewBookingUC.NewUseCase(
		bookingRepository,
		balanceRepository,
		roomRepository,
		notifier,
		txMgr,
		log,
	)

	assignPackageUseCase := assignPackageUC.NewUseCase(balanceRepository, cfg.Pricing.TokenValidDays, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	uploadReceipt := uploadReceiptHandler.NewHandler(uploadReceiptUseCase, cfg.Supabase.MaxReceiptBytes(), log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(conflictSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBalance := getBalanceHandler.NewHandler(bookingSvc, log)
	getCancellationStats := getCancellationStatsHandler.NewHandler(policySvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getRoom := getRoomHandler.NewHandler(roomSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, hours.Location, log)
	reviewBooking := reviewBookingHandler.NewHandler(reviewBookingUseCase, log)
	assignPackage := assignPackageHandler.NewHandler(assignPackageUseCase, log)

	// Authentication
	var authenticator *middleware.Authenticator
	if cfg.Supabase.JWKSURL != "" {
		authenticator, err = middleware.NewJWKSAuthenticator(context.Background(), cfg.Supabase.JWKSURL, log)
		if err != nil {
			log.Fatal("Failed to load JWKS from %s: %v", cfg.Supabase.JWKSURL, err)
		}
		log.Info("Verifying access tokens against %s", cfg.Supabase.JWKSURL)
	} else {
		authenticator = middleware.NewHMACAuthenticator([]byte(cfg.Supabase.JWTSecret), log)
		log.Info("Verifying access tokens with the shared HS256 secret")
	}
	defer authenticator.Close()

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", getRoom.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/start-options", getAvailableSlots.HandleStartOptions).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/end-options", getAvailableSlots.HandleEndOptions).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <access token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authenticator.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/receipt", uploadReceipt.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/balance", getBalance.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/cancellation-stats", getCancellationStats.Handle).Methods(http.MethodGet)

	// --- Admin ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(bookingSvc, log))

	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/review", reviewBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{userId}/packages", assignPackage.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
