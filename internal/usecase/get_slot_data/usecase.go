package get_slot_data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glamslot/booking-service/internal/domain"
	catalogRepo "github.com/glamslot/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
)

// UseCase use case выгрузки данных о слотах мастера
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

// Execute выполняет use case выгрузки данных о слотах
//
// Ответ - снимок без транзакции: клиентский расчет доступности носит
// рекомендательный характер, финальное решение принимает создание
// бронирования в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotData: artist=%d, service=%d", req.ArtistID, req.ServiceID)

	if req.ArtistID <= 0 {
		return nil, fmt.Errorf("%w: artistID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// 1. Услуга должна существовать и принадлежать мастеру
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetSlotData: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetSlotData: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.ArtistID != req.ArtistID {
		uc.logger.Warn("GetSlotData: service id=%d belongs to artist id=%d, not id=%d",
			service.ID, service.ArtistID, req.ArtistID)
		return nil, ErrServiceMismatch
	}

	addOns, err := uc.catalogRepo.GetAddOnsByServiceID(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetSlotData: failed to get add-ons: %v", err)
		return nil, fmt.Errorf("%w: failed to get add-ons: %v", ErrInternal, err)
	}

	// 2. Настройки мастера (дефолты, если не заданы)
	settings, err := uc.scheduleRepo.GetSettings(ctx, req.ArtistID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetSlotData: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = &domain.ArtistSettings{
			ArtistID:          req.ArtistID,
			UnitCount:         domain.DefaultUnitCount,
			BookingMonthLimit: domain.DefaultBookingMonthLimit,
		}
	}

	// 3. Недельные окна работы
	windows, err := uc.scheduleRepo.GetWindowsByArtist(ctx, req.ArtistID)
	if err != nil {
		uc.logger.Error("GetSlotData: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// 4. Блокировки начиная с сегодняшнего дня
	blocks, err := uc.scheduleRepo.GetBlockedIntervalsFrom(ctx, req.ArtistID, today)
	if err != nil {
		uc.logger.Error("GetSlotData: failed to get blocked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
	}

	// 5. Активные бронирования начиная с сегодняшнего дня
	filter := domain.ArtistBookingsFilter{
		ArtistID:        req.ArtistID,
		StartDate:       &today,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByArtistWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlotData: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return buildResponse(service, addOns, settings, windows, blocks, bookings), nil
}

// buildResponse собирает снимок данных о слотах
func buildResponse(
	service *domain.Service,
	addOns []*domain.AddOn,
	settings *domain.ArtistSettings,
	windows []*domain.TimeWindow,
	blocks []*domain.BlockedInterval,
	bookings []*domain.Booking,
) *Response {
	resp := &Response{
		Availability:           make([]WindowItem, 0, len(windows)),
		BlockedDates:           make([]BlockedItem, 0, len(blocks)),
		MaxClients:             settings.UnitCount,
		BookingMonthLimit:      settings.BookingMonthLimit,
		BookedSlots:            make([]BookedSlot, 0, len(bookings)),
		ServiceDurationMinutes: service.DurationMinutes,
		AddOns:                 make([]AddOnDuration, 0, len(addOns)),
	}

	for _, w := range windows {
		resp.Availability = append(resp.Availability, WindowItem{
			Day:         w.Day,
			StartMinute: w.StartMinute,
			EndMinute:   w.EndMinute,
		})
	}

	for _, b := range blocks {
		resp.BlockedDates = append(resp.BlockedDates, BlockedItem{
			Date:        b.Date,
			StartMinute: b.StartMinute,
			EndMinute:   b.EndMinute,
			Units:       b.Units,
		})
	}

	for _, b := range bookings {
		resp.BookedSlots = append(resp.BookedSlots, BookedSlot{
			Date:            b.BookingDate,
			StartTime:       b.StartTime,
			DurationMinutes: b.DurationMinutes,
		})
	}

	for _, a := range addOns {
		resp.AddOns = append(resp.AddOns, AddOnDuration{
			AddOnID:         a.ID,
			DurationMinutes: a.DurationMinutes,
		})
	}

	return resp
}
