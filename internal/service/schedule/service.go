package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	core "github.com/glamslot/booking-service/internal/schedule"
	"github.com/glamslot/booking-service/internal/service/schedule/models"
)

// Service сервис для работы с расписанием мастера:
// окна недельного расписания, блокировки и настройки
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// AddWindow добавляет окно в недельное расписание мастера
//
// Окна одного дня не могут пересекаться даже на минуту; смежные окна
// (конец одного равен началу другого) допустимы, но НЕ сливаются при
// проверке доступности. Чтение и вставка выполняются в одной
// транзакции, чтобы два конкурирующих запроса не создали пересечение
func (s *Service) AddWindow(ctx context.Context, req *models.AddWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("AddWindow: user=%d, artist=%d, day=%d, [%d, %d)",
		req.UserID, req.ArtistID, req.Day, req.StartMinute, req.EndMinute)

	if err := validateAddWindow(req); err != nil {
		s.logger.Warn("AddWindow: validation failed: %v", err)
		return nil, err
	}

	if req.UserID != req.ArtistID {
		s.logger.Warn("AddWindow: access denied for user=%d to artist=%d schedule", req.UserID, req.ArtistID)
		return nil, ErrAccessDenied
	}

	candidate := &domain.TimeWindow{
		ArtistID:    req.ArtistID,
		Day:         req.Day,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
	}

	var created *domain.TimeWindow

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.scheduleRepo.GetWindowsByArtistAndDay(txCtx, req.ArtistID, req.Day)
		if err != nil {
			s.logger.Error("AddWindow: failed to get windows: %v", err)
			return fmt.Errorf("%w: AddWindow - failed to get windows: %v", ErrInternal, err)
		}

		if conflict := core.FindConflict(existing, candidate); conflict != nil {
			s.logger.Warn("AddWindow: conflict with window id=%d [%d, %d)",
				conflict.ID, conflict.StartMinute, conflict.EndMinute)
			return ErrWindowConflict
		}

		created, err = s.scheduleRepo.CreateWindow(txCtx, candidate)
		if err != nil {
			s.logger.Error("AddWindow: failed to create window: %v", err)
			return fmt.Errorf("%w: AddWindow - failed to create window: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddWindow: successfully created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// DeleteWindow удаляет окно недельного расписания
// Доступно только самому мастеру
func (s *Service) DeleteWindow(ctx context.Context, windowID, userID int64) error {
	s.logger.Info("DeleteWindow: window id=%d, user=%d", windowID, userID)

	window, err := s.scheduleRepo.GetWindowByID(ctx, windowID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found", windowID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", windowID, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	if window.ArtistID != userID {
		s.logger.Warn("DeleteWindow: access denied for user=%d to window id=%d", userID, windowID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.DeleteWindow(ctx, windowID); err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: failed to delete window id=%d: %v", windowID, err)
		return fmt.Errorf("%w: DeleteWindow - failed to delete: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: successfully deleted window id=%d", windowID)
	return nil
}

// DeleteBlockedDate удаляет заблокированный интервал
// Доступно только самому мастеру
func (s *Service) DeleteBlockedDate(ctx context.Context, blockID, userID int64) error {
	s.logger.Info("DeleteBlockedDate: block id=%d, user=%d", blockID, userID)

	block, err := s.scheduleRepo.GetBlockedIntervalByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlockedDate: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	if block.ArtistID != userID {
		s.logger.Warn("DeleteBlockedDate: access denied for user=%d to block id=%d", userID, blockID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.DeleteBlockedInterval(ctx, blockID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlockedDate: failed to delete block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlockedDate - failed to delete: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedDate: successfully deleted block id=%d", blockID)
	return nil
}

// GetSchedule возвращает полное расписание мастера: окна, актуальные
// блокировки и настройки
func (s *Service) GetSchedule(ctx context.Context, artistID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: artist=%d", artistID)

	if artistID <= 0 {
		return nil, fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}

	windows, err := s.scheduleRepo.GetWindowsByArtist(ctx, artistID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get windows for artist=%d: %v", artistID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to get windows: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	blocks, err := s.scheduleRepo.GetBlockedIntervalsFrom(ctx, artistID, today)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get blocked intervals for artist=%d: %v", artistID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to get blocked intervals: %v", ErrInternal, err)
	}

	settings, err := s.getSettingsOrDefaults(ctx, artistID)
	if err != nil {
		return nil, err
	}

	return &models.ScheduleResponse{
		Windows:      models.FromDomainWindows(windows),
		BlockedDates: models.FromDomainBlockedIntervals(blocks),
		Settings:     models.FromDomainSettings(settings),
	}, nil
}

// UpdateSettings обновляет настройки мастера
// Доступно только самому мастеру
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: user=%d, artist=%d, units=%d, monthLimit=%d, cutoff=%d",
		req.UserID, req.ArtistID, req.UnitCount, req.BookingMonthLimit, req.CancelCutoffHours)

	if err := validateUpdateSettings(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	if req.UserID != req.ArtistID {
		s.logger.Warn("UpdateSettings: access denied for user=%d to artist=%d settings", req.UserID, req.ArtistID)
		return nil, ErrAccessDenied
	}

	updated, err := s.scheduleRepo.UpsertSettings(ctx, &domain.ArtistSettings{
		ArtistID:          req.ArtistID,
		UnitCount:         req.UnitCount,
		BookingMonthLimit: req.BookingMonthLimit,
		CancelCutoffHours: req.CancelCutoffHours,
	})
	if err != nil {
		s.logger.Error("UpdateSettings: failed to upsert settings for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - failed to upsert settings: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: successfully updated settings for artist=%d", req.ArtistID)
	resp := models.FromDomainSettings(updated)
	return &resp, nil
}

// Вспомогательные методы

// getSettingsOrDefaults возвращает настройки мастера или дефолты
func (s *Service) getSettingsOrDefaults(ctx context.Context, artistID int64) (*domain.ArtistSettings, error) {
	settings, err := s.scheduleRepo.GetSettings(ctx, artistID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			return &domain.ArtistSettings{
				ArtistID:          artistID,
				UnitCount:         domain.DefaultUnitCount,
				BookingMonthLimit: domain.DefaultBookingMonthLimit,
				CancelCutoffHours: domain.DefaultCancelCutoffHours,
			}, nil
		}
		s.logger.Error("getSettingsOrDefaults: failed to get settings for artist=%d: %v", artistID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	return settings, nil
}

// validateAddWindow валидирует запрос на добавление окна
func validateAddWindow(req *models.AddWindowRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}
	if req.Day < 0 || req.Day > 6 {
		return fmt.Errorf("%w: day must be in [0, 6]", ErrInvalidInput)
	}
	if req.StartMinute < 0 || req.EndMinute > domain.MinuteOfDayUpperBound {
		return fmt.Errorf("%w: window must fit within a day", ErrInvalidInput)
	}
	if req.StartMinute >= req.EndMinute {
		return fmt.Errorf("%w: startMinute must be before endMinute", ErrInvalidInput)
	}
	return nil
}

// validateUpdateSettings валидирует запрос на обновление настроек
func validateUpdateSettings(req *models.UpdateSettingsRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ArtistID <= 0 {
		return fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}
	if req.UnitCount < domain.MinUnitCount || req.UnitCount > domain.MaxUnitCount {
		return fmt.Errorf("%w: unitCount must be in [%d, %d]", ErrInvalidInput, domain.MinUnitCount, domain.MaxUnitCount)
	}
	if req.BookingMonthLimit < domain.MinBookingMonthLimit || req.BookingMonthLimit > domain.MaxBookingMonthLimit {
		return fmt.Errorf("%w: bookingMonthLimit must be in [%d, %d]", ErrInvalidInput, domain.MinBookingMonthLimit, domain.MaxBookingMonthLimit)
	}
	if req.CancelCutoffHours < domain.MinCancelCutoffHours || req.CancelCutoffHours > domain.MaxCancelCutoffHours {
		return fmt.Errorf("%w: cancelCutoffHours must be in [%d, %d]", ErrInvalidInput, domain.MinCancelCutoffHours, domain.MaxCancelCutoffHours)
	}
	return nil
}
