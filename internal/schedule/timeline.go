package schedule

import "github.com/glamslot/booking-service/internal/domain"

// BucketMinutes размер бакета timeline
// Фиксированные 30 минут, не конфигурируется
const BucketMinutes = 30

// Timeline отображение начала 30-минутного бакета (минута от начала суток)
// в оставшуюся capacity мастера. Строится заново на каждый запрос,
// никогда не сохраняется
type Timeline map[int]int

// BookingInterval занятый бронированием интервал
type BookingInterval struct {
	StartMinute     int
	DurationMinutes int
}

// BuildTimeline строит timeline занятости для интервала [startMinute, endMinute)
//
// Каждый бакет инициализируется значением unitCount. Активные бронирования
// уменьшают пересекаемые бакеты на 1 (каждое бронирование занимает одно
// место). Заблокированные интервалы тоже уменьшают пересекаемые бакеты
// ровно на 1, независимо от хранимого Units — исторически сложившееся
// поведение: магнитуда Units учитывается только порогом при СОЗДАНИИ
// блокировки (см. CanAdmit), но не при вычитании уже существующих.
// Закреплено тестом; менять только вместе с продуктом
func BuildTimeline(startMinute, endMinute, unitCount int, bookings []BookingInterval, blocks []*domain.BlockedInterval) Timeline {
	timeline := make(Timeline)

	for minute := startMinute; minute < endMinute; minute += BucketMinutes {
		timeline[minute] = unitCount
	}

	for _, b := range bookings {
		decrementRange(timeline, b.StartMinute, b.StartMinute+b.DurationMinutes, startMinute, endMinute)
	}

	for _, blk := range blocks {
		decrementRange(timeline, blk.StartMinute, blk.EndMinute, startMinute, endMinute)
	}

	return timeline
}

// decrementRange уменьшает на 1 все бакеты в пересечении
// [eventStart, eventEnd) и [rangeStart, rangeEnd)
// Бакет не уходит ниже нуля; минуты, не совпадающие с инициализированными
// бакетами, игнорируются
func decrementRange(timeline Timeline, eventStart, eventEnd, rangeStart, rangeEnd int) {
	from := eventStart
	if rangeStart > from {
		from = rangeStart
	}

	to := eventEnd
	if rangeEnd < to {
		to = rangeEnd
	}

	for minute := from; minute < to; minute += BucketMinutes {
		if v, ok := timeline[minute]; ok && v > 0 {
			timeline[minute] = v - 1
		}
	}
}

// ActiveBookingIntervals конвертирует бронирования в занятые интервалы,
// отбрасывая отмененные и no-show
func ActiveBookingIntervals(bookings []*domain.Booking) []BookingInterval {
	intervals := make([]BookingInterval, 0, len(bookings))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		start, err := b.StartTime.Minutes()
		if err != nil {
			// Некорректное время начала не может занимать слоты
			continue
		}

		intervals = append(intervals, BookingInterval{
			StartMinute:     start,
			DurationMinutes: b.DurationMinutes,
		})
	}

	return intervals
}
