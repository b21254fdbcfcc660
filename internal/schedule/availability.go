// Package schedule реализует расчет доступности мастера:
// недельные окна работы, timeline занятости с шагом 30 минут
// и проверку возможности записи
package schedule

import (
	"time"

	"github.com/glamslot/booking-service/internal/domain"
)

// DayIndex возвращает индекс дня недели для даты
// Конвенция: Monday = 0 .. Sunday = 6. Нативный time.Weekday (Sunday = 0)
// переотображается на границе, т.к. строки availability_windows хранят
// день именно в этой конвенции
func DayIndex(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// IsOpen проверяет, что интервал [startMinute, endMinute) целиком лежит
// внутри одного окна из windows
//
// Окна НЕ сливаются: запрос, накрывающий два смежных окна
// (09:00–12:00 и 12:00–17:00), считается закрытым, даже если мастер
// фактически работает без перерыва. Поведение закреплено тестом.
func IsOpen(windows []*domain.TimeWindow, startMinute, endMinute int) bool {
	for _, w := range windows {
		if w.Covers(startMinute, endMinute) {
			return true
		}
	}
	return false
}

// FindConflict возвращает первое окно, пересекающееся с кандидатом
// хотя бы одной минутой, или nil
// Предикат пересечения: new.start < w.end && w.start < new.end
func FindConflict(windows []*domain.TimeWindow, candidate *domain.TimeWindow) *domain.TimeWindow {
	for _, w := range windows {
		if w.Day != candidate.Day {
			continue
		}
		if w.Overlaps(candidate) {
			return w
		}
	}
	return nil
}
