package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	createReservationHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/create_reservation"
	createUserHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/create_user"
	deleteReservationHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/delete_reservation"
	deleteUserHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/delete_user"
	getCalendarHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_calendar"
	getDayGridHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_day_grid"
	getReferenceHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_reference"
	getReservationHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_reservation"
	listAllReservationsHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/list_all_reservations"
	listMyReservationsHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/list_my_reservations"
	listUsersHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/list_users"
	loginHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/login"
	resolveSlotHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/resolve_slot"
	signupHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/signup"
	updateReservationHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/update_reservation"
	updateUserHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/update_user"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/auth"
	"github.com/m04kA/SMC-SpaceBooking/internal/config"
	"github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/conflict"
	reservationsService "github.com/m04kA/SMC-SpaceBooking/internal/service/reservations"
	usersService "github.com/m04kA/SMC-SpaceBooking/internal/service/users"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/window"
	createReservationUC "github.com/m04kA/SMC-SpaceBooking/internal/usecase/create_reservation"
	getCalendarUC "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_calendar"
	getDayGridUC "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_day_grid"
	updateReservationUC "github.com/m04kA/SMC-SpaceBooking/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SpaceBooking/pkg/validation"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	migrateOnly := flag.Bool("migrate", false, "apply migrations and exit")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-SpaceBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}

	// Миграции
	if *migrateOnly || cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.Database.URL()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied")
		if *migrateOnly {
			return
		}
	}

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

	// Без метрик обертка только прокидывает вызовы
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Общие зависимости
	validator := validation.New()
	policy := window.NewPolicy(cfg.Booking.HorizonMonths)
	detector := conflict.NewDetector(reservationRepository, log)
	hasher := auth.NewPasswordHasher(auth.DefaultArgon2idParams)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	// Инициализируем сервисы
	userSvc := usersService.NewService(
		userRepository,
		hasher,
		tokens,
		validator,
		cfg.Auth.AccountTTLMonths,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Учетная запись администратора
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userSvc.EnsureAdmin(seedCtx, cfg.Auth.AdminLoginID, cfg.Auth.AdminPassword); err != nil {
		log.Error("Failed to seed admin account: %v", err)
	}
	seedCancel()

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		detector,
		policy,
		txMgr,
		validator,
		metricsCollector,
		location,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		detector,
		policy,
		txMgr,
		validator,
		metricsCollector,
		location,
		log,
	)
	getDayGridUseCase := getDayGridUC.NewUseCase(reservationRepository, policy, location, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(policy, location, log)

	// Инициализируем handlers
	signup := signupHandler.NewHandler(userSvc, log)
	login := loginHandler.NewHandler(userSvc, log)
	getReference := getReferenceHandler.NewHandler(cfg.Booking.HorizonMonths, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, location, log)
	getDayGrid := getDayGridHandler.NewHandler(getDayGridUseCase, location, log)
	resolveSlot := resolveSlotHandler.NewHandler(reservationSvc, location, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, location, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	listMyReservations := listMyReservationsHandler.NewHandler(reservationSvc, log)
	listAllReservations := listAllReservationsHandler.NewHandler(reservationSvc, location, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	createUser := createUserHandler.NewHandler(userSvc, log)
	updateUser := updateUserHandler.NewHandler(userSvc, log)
	deleteUser := deleteUserHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

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

	authRoutes := api.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RequestsPerMinute / 60),
			Burst: cfg.RateLimit.Burst,
		}, log)
		defer limiter.Stop()
		authRoutes.Use(limiter.Middleware)
		log.Info("Rate limit on /auth: %.0f req/min, burst=%d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	authRoutes.HandleFunc("/signup", signup.Handle).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	// Справочник пространств, слотов и отделов
	api.HandleFunc("/reference", getReference.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	// --- Календарь и сетка дня ---
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dates/{date}/grid", getDayGrid.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dates/{date}/slots/resolve", resolveSlot.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{id}", deleteReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/me/reservations", listMyReservations.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/reservations", listAllReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/users", listUsers.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/users", createUser.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", updateUser.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", deleteUser.Handle).Methods(http.MethodDelete)

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
		log.Info("Starting server on %s (timezone=%s, horizon=%d months)",
			addr, location, cfg.Booking.HorizonMonths)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
