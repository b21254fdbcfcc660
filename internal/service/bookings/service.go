package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	bookingRepo "github.com/glamslot/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступ есть только у клиента-владельца и у мастера
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if booking.ClientID != userID && booking.ArtistID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainBooking(booking)

	addOns, err := s.bookingRepo.GetAddOnsByBookingID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get add-ons for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get add-ons: %v", ErrInternal, err)
	}
	resp.AddOns = models.FromDomainAddOns(addOns)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return resp, nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetArtistBookings получает бронирования мастера с гибкой фильтрацией
// Поддерживает фильтрацию по услуге, периоду, статусу и включению
// неактивных бронирований. Доступно только самому мастеру
func (s *Service) GetArtistBookings(ctx context.Context, req *models.GetArtistBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetArtistBookings: fetching bookings for artist=%d, user=%d", req.ArtistID, req.UserID)

	// Мастер видит только собственное расписание
	if req.UserID != req.ArtistID {
		s.logger.Warn("GetArtistBookings: access denied for user=%d to artist=%d bookings", req.UserID, req.ArtistID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetArtistBookings: invalid filter for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByArtistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetArtistBookings: repository error for artist=%d: %v", req.ArtistID, err)
		return nil, fmt.Errorf("%w: GetArtistBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetArtistBookings: successfully fetched %d bookings for artist=%d", len(bookings), req.ArtistID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить свое бронирование не позднее чем за
// cancelCutoffHours до начала (cancelled_by_client). Мастер может
// отменить любое свое бронирование в любой момент (cancelled_by_artist)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	switch req.UserID {
	case booking.ArtistID:
		cancelStatus = domain.StatusCancelledByArtist
	case booking.ClientID:
		// Клиентская отмена ограничена cancelCutoffHours
		if err := s.checkCancelWindow(ctx, booking); err != nil {
			return err
		}
		cancelStatus = domain.StatusCancelledByClient
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только мастеру (completed, no_show)
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Статусом управляет только мастер
	if booking.ArtistID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	// Мастеру напрямую доступны только completed и no_show
	newStatus, err := models.ToArtistStatusTransition(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: only completed and no_show can be set directly", ErrInvalidStatus)
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkCancelWindow проверяет, что до начала бронирования остается
// не меньше cancelCutoffHours
func (s *Service) checkCancelWindow(ctx context.Context, booking *domain.Booking) error {
	cutoffHours := domain.DefaultCancelCutoffHours

	settings, err := s.scheduleRepo.GetSettings(ctx, booking.ArtistID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			s.logger.Error("checkCancelWindow: failed to get settings for artist=%d: %v", booking.ArtistID, err)
			return fmt.Errorf("%w: checkCancelWindow - failed to get settings: %v", ErrInternal, err)
		}
	} else {
		cutoffHours = settings.CancelCutoffHours
	}

	startMinute, err := booking.StartTime.Minutes()
	if err != nil {
		s.logger.Error("checkCancelWindow: invalid start time %q for booking id=%d", booking.StartTime, booking.ID)
		return fmt.Errorf("%w: checkCancelWindow - invalid start time: %v", ErrInternal, err)
	}

	d := booking.BookingDate
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, startMinute, 0, 0, d.Location())
	deadline := start.Add(-time.Duration(cutoffHours) * time.Hour)

	if s.timeProvider.Now().After(deadline) {
		s.logger.Warn("checkCancelWindow: cancellation window passed for booking id=%d (cutoff=%dh)",
			booking.ID, cutoffHours)
		return ErrCancelWindowPassed
	}

	return nil
}
