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

	addBlockedDateHandler "github.com/glamslot/booking-service/internal/api/handlers/add_blocked_date"
	addWindowHandler "github.com/glamslot/booking-service/internal/api/handlers/add_window"
	cancelBookingHandler "github.com/glamslot/booking-service/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/glamslot/booking-service/internal/api/handlers/check_availability"
	createBookingHandler "github.com/glamslot/booking-service/internal/api/handlers/create_booking"
	deleteBlockedDateHandler "github.com/glamslot/booking-service/internal/api/handlers/delete_blocked_date"
	deleteWindowHandler "github.com/glamslot/booking-service/internal/api/handlers/delete_window"
	getArtistBookingsHandler "github.com/glamslot/booking-service/internal/api/handlers/get_artist_bookings"
	getArtistScheduleHandler "github.com/glamslot/booking-service/internal/api/handlers/get_artist_schedule"
	getBookingHandler "github.com/glamslot/booking-service/internal/api/handlers/get_booking"
	getSlotDataHandler "github.com/glamslot/booking-service/internal/api/handlers/get_slot_data"
	getUserBookingsHandler "github.com/glamslot/booking-service/internal/api/handlers/get_user_bookings"
	updateArtistSettingsHandler "github.com/glamslot/booking-service/internal/api/handlers/update_artist_settings"
	updateBookingStatusHandler "github.com/glamslot/booking-service/internal/api/handlers/update_booking_status"
	"github.com/glamslot/booking-service/internal/api/middleware"
	"github.com/glamslot/booking-service/internal/config"
	bookingRepo "github.com/glamslot/booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/glamslot/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	paymentServiceClient "github.com/glamslot/booking-service/internal/integrations/paymentservice"
	bookingsService "github.com/glamslot/booking-service/internal/service/bookings"
	scheduleService "github.com/glamslot/booking-service/internal/service/schedule"
	addBlockedDateUC "github.com/glamslot/booking-service/internal/usecase/add_blocked_date"
	checkAvailabilityUC "github.com/glamslot/booking-service/internal/usecase/check_availability"
	createBookingUC "github.com/glamslot/booking-service/internal/usecase/create_booking"
	getSlotDataUC "github.com/glamslot/booking-service/internal/usecase/get_slot_data"
	"github.com/glamslot/booking-service/pkg/dbmetrics"
	"github.com/glamslot/booking-service/pkg/logger"
	"github.com/glamslot/booking-service/pkg/metrics"
	"github.com/glamslot/booking-service/pkg/simpletxmanager"
	"github.com/glamslot/booking-service/pkg/txmanager"
)

// systemTimeProvider отдает реальное время в сервисы
type systemTimeProvider struct{}

func (systemTimeProvider) Now() time.Time { return time.Now() }

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

	log.Info("Starting GlamSlot booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentService=%s timeout=%ds)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		catalogRepository  *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	clock := systemTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		clock,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		clock,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		paymentClient,
		txMgr,
		log,
	)
	addBlockedDateUseCase := addBlockedDateUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	getSlotDataUseCase := getSlotDataUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getArtistBookings := getArtistBookingsHandler.NewHandler(bookingSvc, log)
	getSlotData := getSlotDataHandler.NewHandler(getSlotDataUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	addWindow := addWindowHandler.NewHandler(scheduleSvc, log)
	deleteWindow := deleteWindowHandler.NewHandler(scheduleSvc, log)
	addBlockedDate := addBlockedDateHandler.NewHandler(addBlockedDateUseCase, log)
	deleteBlockedDate := deleteBlockedDateHandler.NewHandler(scheduleSvc, log)
	getArtistSchedule := getArtistScheduleHandler.NewHandler(scheduleSvc, log)
	updateArtistSettings := updateArtistSettingsHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сырые данные для клиентского расчета доступности
	api.HandleFunc("/artists/{artistId}/services/{serviceId}/slot-data",
		getSlotData.Handle).Methods(http.MethodGet)

	// Серверная проверка доступности конкретного слота
	api.HandleFunc("/artists/{artistId}/services/{serviceId}/check-availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса мастером (completed / no_show)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	// Список бронирований мастера
	protected.HandleFunc("/artists/{artistId}/bookings", getArtistBookings.Handle).Methods(http.MethodGet)

	// Расписание мастера: окна, блокировки, настройки
	protected.HandleFunc("/artists/{artistId}/schedule", getArtistSchedule.Handle).Methods(http.MethodGet)

	// Окна недельного расписания
	protected.HandleFunc("/artists/{artistId}/windows", addWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/artists/{artistId}/windows/{windowId}", deleteWindow.Handle).Methods(http.MethodDelete)

	// Блокировки дат
	protected.HandleFunc("/artists/{artistId}/blocked-dates", addBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/artists/{artistId}/blocked-dates/{blockId}", deleteBlockedDate.Handle).Methods(http.MethodDelete)

	// Настройки мастера
	protected.HandleFunc("/artists/{artistId}/settings", updateArtistSettings.Handle).Methods(http.MethodPut)

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

	log.Info("Server exited")
}
