package domain

// Default configuration values
const (
	DefaultUnitCount         = 1
	DefaultBookingMonthLimit = 3  // Запись открыта на 3 месяца вперед
	DefaultCancelCutoffHours = 24 // Отмена не позднее чем за сутки
)

// Business validation constants
const (
	MinUnitCount          = 1
	MaxUnitCount          = 100
	MinBookingMonthLimit  = 0 // 0 = unlimited
	MaxBookingMonthLimit  = 12
	MinCancelCutoffHours  = 0
	MaxCancelCutoffHours  = 168 // 1 week
	MinuteOfDayUpperBound = 1440
	MaxNotesLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не потребляющих capacity мастера
// Используется при подсчёте занятости слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByArtist,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
