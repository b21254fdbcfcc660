package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glamslot/booking-service/internal/domain"
	catalogRepo "github.com/glamslot/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/internal/integrations/paymentservice"
	"github.com/glamslot/booking-service/internal/schedule"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogRepo   CatalogRepository
	paymentClient PaymentServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogRepo:   catalogRepo,
		paymentClient: paymentClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и запись выполняются в одной сериализуемой
// транзакции: между чтением занятости и вставкой никто не может
// занять последнее место
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу (мастер резолвится из услуги)
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем выбранные add-on'ы и считаем суммарную длительность
	addOns, err := uc.resolveAddOns(ctx, service, req.AddOnIDs)
	if err != nil {
		return nil, err
	}

	duration := service.DurationMinutes
	for _, a := range addOns {
		duration += a.DurationMinutes
	}

	// 5. Проверяем депозит до транзакции: внешний вызов не должен
	// удерживать сериализуемую транзакцию открытой
	depositVerified := false
	if service.RequiresDeposit {
		paid, err := uc.paymentClient.VerifyDeposit(ctx, req.ClientID, req.ServiceID)
		if err != nil {
			if errors.Is(err, paymentservice.ErrServiceDegraded) {
				// Платежный сервис недоступен - создаем бронирование
				// без подтвержденного депозита
				uc.logger.Warn("CreateBooking: payment service degraded, proceeding unverified: %v", err)
			} else {
				uc.logger.Error("CreateBooking: failed to verify deposit: %v", err)
				return nil, fmt.Errorf("%w: failed to verify deposit: %v", ErrInternal, err)
			}
		} else if !paid {
			uc.logger.Warn("CreateBooking: deposit not paid for client=%d, service=%d", req.ClientID, req.ServiceID)
			return nil, ErrDepositRequired
		} else {
			depositVerified = true
		}
	}

	startMinute, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endMinute := startMinute + duration

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка доступности и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Настройки мастера (дефолты, если мастер ничего не менял)
		settings, err := uc.scheduleRepo.GetSettings(txCtx, service.ArtistID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = &domain.ArtistSettings{
				ArtistID:          service.ArtistID,
				UnitCount:         domain.DefaultUnitCount,
				BookingMonthLimit: domain.DefaultBookingMonthLimit,
				CancelCutoffHours: domain.DefaultCancelCutoffHours,
			}
			uc.logger.Info("CreateBooking: using default settings for artist=%d", service.ArtistID)
		}

		// 6.2. Валидация даты с учетом bookingMonthLimit
		if err := validateDate(req.Date, now, settings); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 6.3. Запрошенный интервал должен целиком лежать в одном окне недельного расписания
		windows, err := uc.scheduleRepo.GetWindowsByArtistAndDay(txCtx, service.ArtistID, schedule.DayIndex(req.Date))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
		}

		if !schedule.IsOpen(windows, startMinute, endMinute) {
			uc.logger.Warn("CreateBooking: artist=%d closed for [%d, %d) on %s",
				service.ArtistID, startMinute, endMinute, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 6.4. Активные бронирования на дату с блокировкой строк (FOR UPDATE)
		filter := domain.ArtistBookingsFilter{
			ArtistID:        service.ArtistID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByArtistWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.5. Блокировки мастера на дату (FOR UPDATE)
		blocks, err := uc.scheduleRepo.GetBlockedIntervals(txCtx, service.ArtistID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked intervals: %v", err)
			return fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
		}

		// 6.6. Строим timeline занятости и проверяем, что на каждом
		// 30-минутном бакете остается хотя бы одно место
		timeline := schedule.BuildTimeline(startMinute, endMinute, settings.UnitCount,
			schedule.ActiveBookingIntervals(bookings), blocks)

		if !schedule.CanAdmit(timeline, 1) {
			min, _ := schedule.MinAvailable(timeline)
			uc.logger.Warn("CreateBooking: slot not available, min capacity %d of %d", min, settings.UnitCount)
			return ErrSlotNotAvailable
		}

		// 6.7. Выездная услуга требует адрес клиента
		if service.RequiresAddress && (req.HomeAddress == nil || *req.HomeAddress == "") {
			uc.logger.Warn("CreateBooking: address required for service id=%d", service.ID)
			return ErrAddressRequired
		}

		// 6.8. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ClientID:        req.ClientID,
			ArtistID:        service.ArtistID,
			ServiceID:       service.ID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			HomeAddress:     req.HomeAddress,
			Notes:           req.Notes,
			DepositVerified: depositVerified,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.9. Строки add-on'ов пишутся в той же транзакции, что и
		// заголовок: либо бронирование сохраняется целиком, либо никак
		if len(addOns) > 0 {
			items := make([]*domain.BookingAddOn, 0, len(addOns))
			for _, a := range addOns {
				items = append(items, &domain.BookingAddOn{
					BookingID:       created.ID,
					AddOnID:         a.ID,
					Name:            a.Name,
					Price:           a.Price,
					DurationMinutes: a.DurationMinutes,
				})
			}

			if err := uc.bookingRepo.CreateAddOns(txCtx, created.ID, items); err != nil {
				uc.logger.Error("CreateBooking: failed to create add-ons: %v", err)
				return fmt.Errorf("%w: failed to create add-ons: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return buildResponse(result, addOns), nil
}

// resolveAddOns загружает add-on'ы и проверяет их принадлежность услуге
func (uc *UseCase) resolveAddOns(ctx context.Context, service *domain.Service, addOnIDs []int64) ([]*domain.AddOn, error) {
	if len(addOnIDs) == 0 {
		return nil, nil
	}

	addOns, err := uc.catalogRepo.GetAddOnsByIDs(ctx, addOnIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrAddOnNotFound) {
			uc.logger.Warn("CreateBooking: add-ons %v not found", addOnIDs)
			return nil, ErrAddOnNotFound
		}
		uc.logger.Error("CreateBooking: failed to get add-ons: %v", err)
		return nil, fmt.Errorf("%w: failed to get add-ons: %v", ErrInternal, err)
	}

	for _, a := range addOns {
		if a.ServiceID != service.ID {
			uc.logger.Warn("CreateBooking: add-on id=%d belongs to service id=%d, not id=%d",
				a.ID, a.ServiceID, service.ID)
			return nil, ErrAddOnNotFound
		}
	}

	return addOns, nil
}

// buildResponse конвертирует бронирование в response
func buildResponse(booking *domain.Booking, addOns []*domain.AddOn) *Response {
	items := make([]AddOnItem, 0, len(addOns))
	for _, a := range addOns {
		items = append(items, AddOnItem{
			AddOnID:         a.ID,
			Name:            a.Name,
			Price:           a.Price,
			DurationMinutes: a.DurationMinutes,
		})
	}

	return &Response{
		ID:              booking.ID,
		ClientID:        booking.ClientID,
		ArtistID:        booking.ArtistID,
		ServiceID:       booking.ServiceID,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
		Status:          string(booking.Status),
		ServiceName:     booking.ServiceName,
		ServicePrice:    booking.ServicePrice,
		AddOns:          items,
		HomeAddress:     booking.HomeAddress,
		Notes:           booking.Notes,
		DepositVerified: booking.DepositVerified,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}
}
