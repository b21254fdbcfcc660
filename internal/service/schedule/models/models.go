package models

import (
	"time"

	"github.com/glamslot/booking-service/internal/domain"
)

// Request модели

// AddWindowRequest запрос на добавление окна недельного расписания
type AddWindowRequest struct {
	UserID      int64 `json:"userId"`
	ArtistID    int64 `json:"artistId"`
	Day         int   `json:"day"` // 0 = понедельник .. 6 = воскресенье
	StartMinute int   `json:"startMinute"`
	EndMinute   int   `json:"endMinute"`
}

// UpdateSettingsRequest запрос на обновление настроек мастера
type UpdateSettingsRequest struct {
	UserID            int64 `json:"userId"`
	ArtistID          int64 `json:"artistId"`
	UnitCount         int   `json:"unitCount"`
	BookingMonthLimit int   `json:"bookingMonthLimit"`
	CancelCutoffHours int   `json:"cancelCutoffHours"`
}

// Response модели

// WindowResponse окно недельного расписания
type WindowResponse struct {
	ID          int64     `json:"id"`
	ArtistID    int64     `json:"artistId"`
	Day         int       `json:"day"`
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlockedIntervalResponse заблокированный интервал
type BlockedIntervalResponse struct {
	ID          int64     `json:"id"`
	ArtistID    int64     `json:"artistId"`
	Date        string    `json:"date"` // "2026-03-15"
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	Units       int       `json:"units"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SettingsResponse настройки мастера
type SettingsResponse struct {
	ArtistID          int64 `json:"artistId"`
	UnitCount         int   `json:"unitCount"`
	BookingMonthLimit int   `json:"bookingMonthLimit"`
	CancelCutoffHours int   `json:"cancelCutoffHours"`
}

// ScheduleResponse полное расписание мастера
type ScheduleResponse struct {
	Windows      []WindowResponse          `json:"windows"`
	BlockedDates []BlockedIntervalResponse `json:"blockedDates"`
	Settings     SettingsResponse          `json:"settings"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель окна в DTO
func FromDomainWindow(w *domain.TimeWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:          w.ID,
		ArtistID:    w.ArtistID,
		Day:         w.Day,
		StartMinute: w.StartMinute,
		EndMinute:   w.EndMinute,
		CreatedAt:   w.CreatedAt,
	}
}

// FromDomainWindows конвертирует список окон в DTO
func FromDomainWindows(windows []*domain.TimeWindow) []WindowResponse {
	out := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		if resp := FromDomainWindow(w); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}

// FromDomainBlockedInterval конвертирует domain модель блокировки в DTO
func FromDomainBlockedInterval(b *domain.BlockedInterval) *BlockedIntervalResponse {
	if b == nil {
		return nil
	}
	return &BlockedIntervalResponse{
		ID:          b.ID,
		ArtistID:    b.ArtistID,
		Date:        b.Date.Format(domain.DateFormat),
		StartMinute: b.StartMinute,
		EndMinute:   b.EndMinute,
		Units:       b.Units,
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBlockedIntervals конвертирует список блокировок в DTO
func FromDomainBlockedIntervals(blocks []*domain.BlockedInterval) []BlockedIntervalResponse {
	out := make([]BlockedIntervalResponse, 0, len(blocks))
	for _, b := range blocks {
		if resp := FromDomainBlockedInterval(b); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}

// FromDomainSettings конвертирует domain модель настроек в DTO
func FromDomainSettings(s *domain.ArtistSettings) SettingsResponse {
	return SettingsResponse{
		ArtistID:          s.ArtistID,
		UnitCount:         s.UnitCount,
		BookingMonthLimit: s.BookingMonthLimit,
		CancelCutoffHours: s.CancelCutoffHours,
	}
}
