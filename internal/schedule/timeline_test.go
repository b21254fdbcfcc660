package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamslot/booking-service/internal/domain"
)

func block(start, end, units int) *domain.BlockedInterval {
	return &domain.BlockedInterval{StartMinute: start, EndMinute: end, Units: units}
}

func TestBuildTimeline_EmptyDayKeepsFullCapacity(t *testing.T) {
	timeline := BuildTimeline(540, 660, 2, nil, nil)

	require.Len(t, timeline, 4) // 540, 570, 600, 630
	for minute, capacity := range timeline {
		assert.Equal(t, 2, capacity, "bucket %d", minute)
	}
}

func TestBuildTimeline_BookingDecrementsIntersectionOnly(t *testing.T) {
	bookings := []BookingInterval{{StartMinute: 600, DurationMinutes: 60}}

	timeline := BuildTimeline(540, 720, 2, bookings, nil)

	assert.Equal(t, 2, timeline[540])
	assert.Equal(t, 2, timeline[570])
	assert.Equal(t, 1, timeline[600])
	assert.Equal(t, 1, timeline[630])
	assert.Equal(t, 2, timeline[660])
	assert.Equal(t, 2, timeline[690])
}

func TestBuildTimeline_BookingOutsideRangeIgnored(t *testing.T) {
	bookings := []BookingInterval{{StartMinute: 480, DurationMinutes: 60}} // 08:00-09:00

	timeline := BuildTimeline(540, 660, 1, bookings, nil)

	for minute, capacity := range timeline {
		assert.Equal(t, 1, capacity, "bucket %d", minute)
	}
}

func TestBuildTimeline_BookingSpanningRangeStartClipped(t *testing.T) {
	// Бронирование 08:30-09:30 пересекает запрошенный интервал с 09:00
	bookings := []BookingInterval{{StartMinute: 510, DurationMinutes: 60}}

	timeline := BuildTimeline(540, 660, 1, bookings, nil)

	assert.Equal(t, 0, timeline[540])
	assert.Equal(t, 1, timeline[570])
}

// P1: capacity никогда не уходит в минус
func TestBuildTimeline_CapacityNeverNegative(t *testing.T) {
	bookings := []BookingInterval{
		{StartMinute: 600, DurationMinutes: 60},
		{StartMinute: 600, DurationMinutes: 60},
		{StartMinute: 600, DurationMinutes: 60},
	}
	blocks := []*domain.BlockedInterval{block(600, 660, 1)}

	timeline := BuildTimeline(540, 720, 2, bookings, blocks)

	for minute, capacity := range timeline {
		assert.GreaterOrEqual(t, capacity, 0, "bucket %d", minute)
	}
	assert.Equal(t, 0, timeline[600])
	assert.Equal(t, 0, timeline[630])
}

// Блокировка с Units=3 вычитает из каждого бакета ровно 1, а не 3.
// Историческое поведение, см. комментарий к BuildTimeline
func TestBuildTimeline_BlockDecrementsByOneRegardlessOfUnits(t *testing.T) {
	blocks := []*domain.BlockedInterval{block(600, 660, 3)}

	timeline := BuildTimeline(540, 720, 5, nil, blocks)

	assert.Equal(t, 5, timeline[540])
	assert.Equal(t, 4, timeline[600])
	assert.Equal(t, 4, timeline[630])
	assert.Equal(t, 5, timeline[660])
}

func TestBuildTimeline_MultipleBlocksStack(t *testing.T) {
	blocks := []*domain.BlockedInterval{
		block(600, 660, 1),
		block(630, 690, 2),
	}

	timeline := BuildTimeline(540, 720, 3, nil, blocks)

	assert.Equal(t, 3, timeline[570])
	assert.Equal(t, 2, timeline[600])
	assert.Equal(t, 1, timeline[630]) // обе блокировки, каждая по -1
	assert.Equal(t, 2, timeline[660])
	assert.Equal(t, 3, timeline[690])
}

// P4: повторное построение без изменений дает идентичный результат
func TestBuildTimeline_IdempotentRead(t *testing.T) {
	bookings := []BookingInterval{{StartMinute: 570, DurationMinutes: 90}}
	blocks := []*domain.BlockedInterval{block(600, 630, 2)}

	first := BuildTimeline(540, 720, 2, bookings, blocks)
	second := BuildTimeline(540, 720, 2, bookings, blocks)

	assert.Equal(t, first, second)
}

func TestActiveBookingIntervals(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusCancelledByClient},
		{StartTime: "12:00", DurationMinutes: 30, Status: domain.StatusNoShow},
		{StartTime: "13:00", DurationMinutes: 45, Status: domain.StatusCompleted},
	}

	intervals := ActiveBookingIntervals(bookings)

	require.Len(t, intervals, 2, "cancelled and no-show do not consume capacity")
	assert.Equal(t, BookingInterval{StartMinute: 600, DurationMinutes: 60}, intervals[0])
	assert.Equal(t, BookingInterval{StartMinute: 780, DurationMinutes: 45}, intervals[1])
}

func TestActiveBookingIntervals_SkipsMalformedStartTime(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "oops", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	assert.Empty(t, ActiveBookingIntervals(bookings))
}

// P2: после успешной admission вставка бронирования уменьшает каждый бакет
// интервала ровно на 1
func TestAdmissionSoundness(t *testing.T) {
	existing := []BookingInterval{{StartMinute: 600, DurationMinutes: 60}}

	before := BuildTimeline(600, 660, 2, existing, nil)
	require.True(t, CanAdmit(before, 1))

	inserted := append(existing, BookingInterval{StartMinute: 600, DurationMinutes: 60})
	after := BuildTimeline(600, 660, 2, inserted, nil)

	for minute, capacity := range before {
		assert.Equal(t, capacity-1, after[minute], "bucket %d", minute)
	}
}

// Регрессия на конвенцию дней: окно на понедельник видно 1 января 2024
// (понедельник) и не видно 7 января (воскресенье)
func TestWindowVisibilityAcrossWeek(t *testing.T) {
	windows := []*domain.TimeWindow{window(0, 540, 1020)}

	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DayIndex(monday))
	assert.True(t, IsOpen(windowsForDay(windows, DayIndex(monday)), 600, 660))
	assert.Equal(t, 6, DayIndex(sunday))
	assert.False(t, IsOpen(windowsForDay(windows, DayIndex(sunday)), 600, 660))
}

func windowsForDay(windows []*domain.TimeWindow, day int) []*domain.TimeWindow {
	result := make([]*domain.TimeWindow, 0, len(windows))
	for _, w := range windows {
		if w.Day == day {
			result = append(result, w)
		}
	}
	return result
}
