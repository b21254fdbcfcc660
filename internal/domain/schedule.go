package domain

import "time"

// TimeWindow represents one recurring open interval for one weekday
// Day uses the Monday=0 .. Sunday=6 convention (see DayIndex in internal/schedule);
// stored rows encode the day with this convention, never time.Weekday
type TimeWindow struct {
	ID          int64
	ArtistID    int64
	Day         int // 0 = Monday .. 6 = Sunday
	StartMinute int // [0, 1440)
	EndMinute   int // (StartMinute, 1440]
	CreatedAt   time.Time
}

// Overlaps returns true if the window shares at least one minute with other
// Both windows must belong to the same day for the result to be meaningful
func (w *TimeWindow) Overlaps(other *TimeWindow) bool {
	return w.StartMinute < other.EndMinute && other.StartMinute < w.EndMinute
}

// Covers returns true if the window fully contains [startMinute, endMinute)
func (w *TimeWindow) Covers(startMinute, endMinute int) bool {
	return w.StartMinute <= startMinute && w.EndMinute >= endMinute
}

// BlockedInterval represents artist capacity declared unavailable
// for [StartMinute, EndMinute) on a specific date, independent of the
// weekly pattern
type BlockedInterval struct {
	ID          int64
	ArtistID    int64
	Date        time.Time
	StartMinute int
	EndMinute   int
	Units       int // Сколько мест мастер резервирует как недоступные
	CreatedAt   time.Time
}

// ArtistSettings per-artist booking configuration
type ArtistSettings struct {
	ArtistID          int64
	UnitCount         int // Количество взаимозаменяемых мастеров/мест
	BookingMonthLimit int // На сколько месяцев вперед открыта запись (0 = без ограничения)
	CancelCutoffHours int // За сколько часов до начала клиент еще может отменить
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasBookingMonthLimit returns true if bookings are limited in how far
// ahead they can be made
func (s *ArtistSettings) HasBookingMonthLimit() bool {
	return s.BookingMonthLimit > 0
}
