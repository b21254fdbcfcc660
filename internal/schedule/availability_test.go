package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glamslot/booking-service/internal/domain"
)

func window(day, start, end int) *domain.TimeWindow {
	return &domain.TimeWindow{Day: day, StartMinute: start, EndMinute: end}
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"monday maps to 0", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"tuesday maps to 1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 1},
		{"saturday maps to 5", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), 5},
		{"sunday maps to 6", time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayIndex(tt.date))
		})
	}
}

func TestIsOpen_SingleWindowContainment(t *testing.T) {
	windows := []*domain.TimeWindow{window(0, 540, 1020)} // Mon 09:00-17:00

	assert.True(t, IsOpen(windows, 600, 660))
	assert.True(t, IsOpen(windows, 540, 1020), "exact window bounds are open")
	assert.False(t, IsOpen(windows, 500, 560), "starts before the window")
	assert.False(t, IsOpen(windows, 1000, 1060), "ends after the window")
}

func TestIsOpen_NoWindowsForDay(t *testing.T) {
	assert.False(t, IsOpen(nil, 600, 660))
	assert.False(t, IsOpen([]*domain.TimeWindow{}, 600, 660))
}

// Запрос через границу двух смежных окон закрыт, даже если мастер
// непрерывно работает 09:00-17:00 двумя окнами. Если это поведение
// меняется, тест должен быть изменен осознанно
func TestIsOpen_AdjacentWindowsDoNotMerge(t *testing.T) {
	windows := []*domain.TimeWindow{
		window(0, 540, 720),  // 09:00-12:00
		window(0, 720, 1020), // 12:00-17:00
	}

	assert.False(t, IsOpen(windows, 660, 780), "11:00-13:00 spans both windows")
	assert.True(t, IsOpen(windows, 600, 660))
	assert.True(t, IsOpen(windows, 720, 780))
}

// Сценарий: окно только 09:00-10:30, запрос 10:00-11:00 не покрыт целиком
func TestIsOpen_PartialCoverageRejected(t *testing.T) {
	windows := []*domain.TimeWindow{window(1, 540, 630)}

	assert.False(t, IsOpen(windows, 600, 660))
}

func TestFindConflict(t *testing.T) {
	existing := []*domain.TimeWindow{
		window(0, 540, 600), // Mon 09:00-10:00
		window(2, 540, 600), // Wed 09:00-10:00
	}

	t.Run("overlapping same day rejected", func(t *testing.T) {
		conflict := FindConflict(existing, window(0, 590, 650))
		assert.NotNil(t, conflict)
		assert.Equal(t, 540, conflict.StartMinute)
	})

	t.Run("touching windows do not conflict", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, window(0, 600, 660)))
	})

	t.Run("same interval другой день", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, window(1, 540, 600)))
	})

	t.Run("contained window conflicts", func(t *testing.T) {
		assert.NotNil(t, FindConflict(existing, window(0, 550, 560)))
	})
}
