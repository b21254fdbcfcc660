package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	catalogRepo "github.com/glamslot/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/internal/schedule"
)

// UseCase use case проверки доступности слота
//
// Выполняет ту же проверку допуска, что и создание бронирования, но
// без блокировок и без записи: окно недельного расписания, timeline
// занятости, минимум свободных мест
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: artist=%d, service=%d, date=%s, time=%s",
		req.ArtistID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 1. Услуга и add-on'ы определяют полную длительность
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration := service.DurationMinutes
	if len(req.AddOnIDs) > 0 {
		addOns, err := uc.catalogRepo.GetAddOnsByIDs(ctx, req.AddOnIDs)
		if err != nil && !errors.Is(err, catalogRepo.ErrAddOnNotFound) {
			uc.logger.Error("CheckAvailability: failed to get add-ons: %v", err)
			return nil, fmt.Errorf("%w: failed to get add-ons: %v", ErrInternal, err)
		}
		for _, a := range addOns {
			if a.ServiceID == service.ID {
				duration += a.DurationMinutes
			}
		}
	}

	startMinute, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endMinute := startMinute + duration

	// 2. Настройки мастера
	settings, err := uc.scheduleRepo.GetSettings(ctx, service.ArtistID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			uc.logger.Error("CheckAvailability: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = &domain.ArtistSettings{
			ArtistID:          service.ArtistID,
			UnitCount:         domain.DefaultUnitCount,
			BookingMonthLimit: domain.DefaultBookingMonthLimit,
		}
	}

	// 3. Дата в прошлом или за пределами окна записи
	now := uc.timeProvider.Now()
	if !isDateBookable(req.Date, now, settings) {
		return &Response{Available: false, Reason: ReasonDateNotBookable, DurationMinutes: duration}, nil
	}

	// 4. Интервал должен целиком лежать в одном окне недельного расписания
	windows, err := uc.scheduleRepo.GetWindowsByArtistAndDay(ctx, service.ArtistID, schedule.DayIndex(req.Date))
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	if !schedule.IsOpen(windows, startMinute, endMinute) {
		return &Response{Available: false, Reason: ReasonSlotNotAvailable, DurationMinutes: duration}, nil
	}

	// 5. Timeline занятости по бронированиям и блокировкам
	filter := domain.ArtistBookingsFilter{
		ArtistID:        service.ArtistID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByArtistWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.scheduleRepo.GetBlockedIntervals(ctx, service.ArtistID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get blocked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
	}

	timeline := schedule.BuildTimeline(startMinute, endMinute, settings.UnitCount,
		schedule.ActiveBookingIntervals(bookings), blocks)

	if !schedule.CanAdmit(timeline, 1) {
		return &Response{Available: false, Reason: ReasonSlotNotAvailable, DurationMinutes: duration}, nil
	}

	return &Response{Available: true, DurationMinutes: duration}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

// isDateBookable проверяет, что дата не в прошлом и не дальше
// bookingMonthLimit месяцев вперед
func isDateBookable(date, now time.Time, settings *domain.ArtistSettings) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	todayOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(todayOnly) {
		return false
	}

	if settings.HasBookingMonthLimit() && dateOnly.After(todayOnly.AddDate(0, settings.BookingMonthLimit, 0)) {
		return false
	}

	return true
}
