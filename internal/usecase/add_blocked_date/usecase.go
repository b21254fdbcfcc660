package add_blocked_date

import (
	"context"
	"errors"
	"fmt"

	"github.com/glamslot/booking-service/internal/domain"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/internal/schedule"
)

// UseCase use case для блокировки интервала в расписании мастера
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case блокировки интервала
//
// Порог проверяется по полной магнитуде Units: нельзя зарезервировать
// больше мест, чем остается свободных на каждом бакете интервала.
// Проверка и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddBlockedDate: user=%d, artist=%d, date=%s, time=%s-%s, units=%d",
		req.UserID, req.ArtistID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Units)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddBlockedDate: validation failed: %v", err)
		return nil, err
	}

	// 2. Блокировать можно только собственное расписание
	if req.UserID != req.ArtistID {
		uc.logger.Warn("AddBlockedDate: user id=%d is not artist id=%d", req.UserID, req.ArtistID)
		return nil, ErrAccessDenied
	}

	startMinute, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endMinute, err := req.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	// 3. Начало должно быть строго раньше конца
	if startMinute >= endMinute {
		uc.logger.Warn("AddBlockedDate: invalid time range [%d, %d)", startMinute, endMinute)
		return nil, ErrInvalidTimeRange
	}

	var result *domain.BlockedInterval

	// 4. Проверка занятости и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Настройки мастера
		settings, err := uc.scheduleRepo.GetSettings(txCtx, req.ArtistID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
				uc.logger.Error("AddBlockedDate: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = &domain.ArtistSettings{
				ArtistID:  req.ArtistID,
				UnitCount: domain.DefaultUnitCount,
			}
		}

		// 4.2. Блокируемый интервал должен целиком лежать в одном окне
		// недельного расписания (проверяется только при создании)
		windows, err := uc.scheduleRepo.GetWindowsByArtistAndDay(txCtx, req.ArtistID, schedule.DayIndex(req.Date))
		if err != nil {
			uc.logger.Error("AddBlockedDate: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
		}

		if !schedule.IsOpen(windows, startMinute, endMinute) {
			uc.logger.Warn("AddBlockedDate: artist=%d closed for [%d, %d) on %s",
				req.ArtistID, startMinute, endMinute, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 4.3. Активные бронирования на дату с блокировкой строк (FOR UPDATE)
		filter := domain.ArtistBookingsFilter{
			ArtistID:        req.ArtistID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByArtistWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("AddBlockedDate: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.4. Уже существующие блокировки на дату (FOR UPDATE)
		blocks, err := uc.scheduleRepo.GetBlockedIntervals(txCtx, req.ArtistID, req.Date)
		if err != nil {
			uc.logger.Error("AddBlockedDate: failed to get blocked intervals: %v", err)
			return fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
		}

		// 4.5. На каждом бакете интервала должно оставаться не меньше
		// Units свободных мест
		timeline := schedule.BuildTimeline(startMinute, endMinute, settings.UnitCount,
			schedule.ActiveBookingIntervals(bookings), blocks)

		if !schedule.CanAdmit(timeline, req.Units) {
			min, _ := schedule.MinAvailable(timeline)
			uc.logger.Warn("AddBlockedDate: not enough capacity, min %d, requested %d", min, req.Units)
			return ErrNotEnoughArtists
		}

		// 4.6. Создаем блокировку
		created, err := uc.scheduleRepo.CreateBlockedInterval(txCtx, &domain.BlockedInterval{
			ArtistID:    req.ArtistID,
			Date:        req.Date,
			StartMinute: startMinute,
			EndMinute:   endMinute,
			Units:       req.Units,
		})
		if err != nil {
			uc.logger.Error("AddBlockedDate: failed to create blocked interval: %v", err)
			return fmt.Errorf("%w: failed to create blocked interval: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AddBlockedDate: successfully created blocked interval id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		ArtistID:    result.ArtistID,
		Date:        result.Date,
		StartMinute: result.StartMinute,
		EndMinute:   result.EndMinute,
		Units:       result.Units,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.Units < 1 {
		return fmt.Errorf("%w: units must be at least 1", ErrInvalidInput)
	}

	return nil
}
