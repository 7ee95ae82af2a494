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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	checkoutHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/checkout"
	createBookingHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_booking"
	getPricesHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_prices"
	getSlotCatalogHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_slot_catalog"
	getStatsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_stats"
	getUserBookingsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/list_bookings"
	selectionHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/selection"
	updateBookingStatusHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/update_booking_status"
	updatePricesHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/update_prices"
	"github.com/m04kA/SMC-TurfBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBookingService/internal/config"
	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/migrations"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/session"
	bookingRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	pricesRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/prices"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/payment"
	"github.com/m04kA/SMC-TurfBookingService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-TurfBookingService/internal/service/bookings"
	pricesService "github.com/m04kA/SMC-TurfBookingService/internal/service/prices"
	selectionService "github.com/m04kA/SMC-TurfBookingService/internal/service/selection"
	checkoutUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/checkout"
	createBookingUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/create_booking"
	getSlotCatalogUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_slot_catalog"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/txmanager"
)

// bookingStore общий набор методов postgres- и in-memory хранилища бронирований
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBookedHours(ctx context.Context, date string) ([]int, error)
	IsPaymentReferenceUsed(ctx context.Context, referenceID string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	MarkFullyPaid(ctx context.Context, id int64) error
	CompletePast(ctx context.Context, before string) (int64, error)
}

type priceStore interface {
	GetAll(ctx context.Context) ([]domain.PriceOverride, error)
	Upsert(ctx context.Context, hour, price int) (*domain.PriceOverride, error)
	Delete(ctx context.Context, hour int) error
	DeleteAll(ctx context.Context) (int64, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type sessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Selection, error)
	Save(ctx context.Context, sessionID string, sel *domain.Selection) error
	Delete(ctx context.Context, sessionID string) error
}

type paymentGateway interface {
	Provider() string
	CreateIntent(ctx context.Context, amount int, description string, metadata map[string]string) (*payment.Intent, error)
	Verify(ctx context.Context, referenceID *string, amount int, sessionID string) error
	Refund(ctx context.Context, referenceID string) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-TurfBookingService...")
	log.Info("Configuration loaded: storage=%s, session=%s, payment=%s",
		cfg.Storage.Driver, cfg.Session.Driver, cfg.Payment.Provider)

	// Часовой пояс площадки (проверен в config.Validate)
	venueLoc, err := cfg.Server.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	log.Info("Venue timezone: %s", venueLoc)

	ctx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бронирований и цен
	var (
		bookings bookingStore
		prices   priceStore
		txMgr    txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := openDatabase(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil, cfg.Database.DBName)
		}

		bookings = bookingRepo.NewRepository(wrappedDB)
		prices = pricesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.New(wrappedDB, log)

	default:
		bookings = memory.NewBookingStore()
		prices = memory.NewPriceStore()
		txMgr = memory.NewTxManager()
		log.Warn("Using in-memory storage, bookings will be lost on restart")
	}

	// Сессии выбора слотов
	var (
		sessions    sessionStore
		redisClient *redis.Client
	)
	sessionTTL := time.Duration(cfg.Session.TTL) * time.Second

	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		redisClient, err = session.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			log.Fatal("Failed to create redis client: %v", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		sessions = session.NewRedisStore(redisClient, sessionTTL)
		log.Info("Selection sessions stored in redis (ttl=%s)", sessionTTL)

	default:
		sessions = session.NewMemoryStore(sessionTTL)
		log.Info("Selection sessions stored in memory (ttl=%s)", sessionTTL)
	}

	// Платежный шлюз
	var gateway paymentGateway
	switch cfg.Payment.Provider {
	case config.PaymentProviderStripe:
		gateway = payment.NewStripeGateway(payment.NewStripeAPI(cfg.Payment.SecretKey), cfg.Payment.Currency, log)
	default:
		gateway = payment.NewMockGateway(log)
		log.Warn("Using mock payment gateway, payments are not charged")
	}
	log.Info("Payment gateway initialized: provider=%s, currency=%s", gateway.Provider(), cfg.Payment.Currency)

	// Инициализируем сервисы
	priceSvc := pricesService.NewService(prices, log)
	bookingSvc := bookingsService.NewService(bookings, txMgr, metricsCollector, log)
	selectionSvc := selectionService.NewService(sessions, bookings, priceSvc, venueLoc, log)

	// Инициализируем use cases
	getSlotCatalogUseCase := getSlotCatalogUC.NewUseCase(bookings, priceSvc, venueLoc, log)
	checkoutUseCase := checkoutUC.NewUseCase(sessions, bookings, gateway, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		sessions,
		gateway,
		txMgr,
		metricsCollector,
		venueLoc,
		log,
	)

	// Инициализируем handlers
	getSlotCatalog := getSlotCatalogHandler.NewHandler(getSlotCatalogUseCase, log)
	getPrices := getPricesHandler.NewHandler(priceSvc, log)
	selection := selectionHandler.NewHandler(selectionSvc, log)
	checkout := checkoutHandler.NewHandler(checkoutUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getStats := getStatsHandler.NewHandler(bookingSvc, log)
	updatePrices := updatePricesHandler.NewHandler(priceSvc, log)

	adminGuard := middleware.NewAdminGuard(cfg.Admin.Token)
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is empty, admin routes are disabled")
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог слотов на дату и таблица цен
	api.HandleFunc("/slots", getSlotCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/prices", getPrices.Handle).Methods(http.MethodGet)

	// --- Сессия выбора слотов ---
	api.HandleFunc("/selections", selection.Start).Methods(http.MethodPost)
	api.HandleFunc("/selections/{sessionId}", selection.Get).Methods(http.MethodGet)
	api.HandleFunc("/selections/{sessionId}", selection.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/selections/{sessionId}/date", selection.SetDate).Methods(http.MethodPut)
	api.HandleFunc("/selections/{sessionId}/toggle", selection.Toggle).Methods(http.MethodPost)

	// Оформление оплаты (ограничение частоты запросов)
	paid := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		paid.Use(limiter.Limit)
		log.Info("Rate limit enabled: rps=%.2f, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	paid.HandleFunc("/checkout", checkout.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := paid.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.Handle("/bookings/{bookingId}",
		adminGuard.Detect(http.HandlerFunc(getBooking.Handle))).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminGuard.Require)

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/prices", updatePrices.ResetAll).Methods(http.MethodDelete)
	admin.HandleFunc("/prices/{hour}", updatePrices.Set).Methods(http.MethodPut)
	admin.HandleFunc("/prices/{hour}", updatePrices.Reset).Methods(http.MethodDelete)

	// CORS для фронтенда
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderAdminToken},
	}).Handler(r)

	// Фоновая задача завершения прошедших бронирований
	var scheduler *jobs.Scheduler
	if cfg.Jobs.LifecycleEnabled {
		lifecycleJob := jobs.NewLifecycleJob(bookingSvc, venueLoc, log)
		scheduler, err = jobs.NewScheduler(ctx, lifecycleJob,
			time.Duration(cfg.Jobs.LifecycleInterval)*time.Second, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		scheduler.Start()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	cancelJobs()
	if scheduler != nil {
		_ = scheduler.Shutdown()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// openDatabase подключается к postgres, настраивает пул и при необходимости применяет миграции
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	if !cfg.AutoMigrate {
		return db, nil
	}

	migrator, err := migrations.NewMigrator(db, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}
