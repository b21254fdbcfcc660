package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamslot/booking-service/internal/domain"
)

func TestMinAvailable(t *testing.T) {
	t.Run("empty timeline", func(t *testing.T) {
		_, ok := MinAvailable(Timeline{})
		assert.False(t, ok)
	})

	t.Run("single bucket", func(t *testing.T) {
		min, ok := MinAvailable(Timeline{540: 2})
		require.True(t, ok)
		assert.Equal(t, 2, min)
	})

	t.Run("minimum across buckets", func(t *testing.T) {
		min, ok := MinAvailable(Timeline{540: 2, 570: 0, 600: 1})
		require.True(t, ok)
		assert.Equal(t, 0, min)
	})
}

func TestCanAdmit(t *testing.T) {
	timeline := Timeline{600: 1, 630: 1}

	assert.True(t, CanAdmit(timeline, 1))
	assert.False(t, CanAdmit(timeline, 2))
	assert.True(t, CanAdmit(Timeline{}, 1), "empty interval admits")
}

// Сценарий A: unitCount=2, окно пн 09:00-17:00, без бронирований.
// Запись пн 10:00 на 60 минут проходит
func TestScenarioA_FirstBookingAdmitted(t *testing.T) {
	windows := []*domain.TimeWindow{window(0, 540, 1020)}
	require.True(t, IsOpen(windows, 600, 660))

	timeline := BuildTimeline(600, 660, 2, nil, nil)
	assert.True(t, CanAdmit(timeline, 1))

	min, ok := MinAvailable(timeline)
	require.True(t, ok)
	assert.Equal(t, 2, min)
}

// Сценарий B: после первой записи вторая на тот же интервал проходит,
// третья отклоняется
func TestScenarioB_CapacityExhaustion(t *testing.T) {
	one := []BookingInterval{{StartMinute: 600, DurationMinutes: 60}}
	timeline := BuildTimeline(600, 660, 2, one, nil)
	assert.True(t, CanAdmit(timeline, 1), "second booking fits")

	two := append(one, BookingInterval{StartMinute: 600, DurationMinutes: 60})
	timeline = BuildTimeline(600, 660, 2, two, nil)
	assert.False(t, CanAdmit(timeline, 1), "third booking rejected")
}

// Сценарий C: unitCount=1, блокировка вт 10:00-11:00 с Units=1 закрывает
// запись на этот интервал
func TestScenarioC_BlockConsumesSoleUnit(t *testing.T) {
	blocks := []*domain.BlockedInterval{block(600, 660, 1)}

	timeline := BuildTimeline(600, 660, 1, nil, blocks)

	assert.False(t, CanAdmit(timeline, 1))
}

// Порог при создании блокировки учитывает полную магнитуду Units
func TestBlockAdmission_MagnitudeAwareThreshold(t *testing.T) {
	timeline := BuildTimeline(600, 660, 2, nil, nil)

	assert.True(t, CanAdmit(timeline, 2), "block of 2 units fits into capacity 2")
	assert.False(t, CanAdmit(timeline, 3), "block of 3 units exceeds capacity")

	// Существующая блокировка вычитает 1 (см. BuildTimeline), поэтому
	// после нее блокировка на 2 места уже не проходит
	withBlock := BuildTimeline(600, 660, 2, nil, []*domain.BlockedInterval{block(600, 660, 1)})
	assert.False(t, CanAdmit(withBlock, 2))
	assert.True(t, CanAdmit(withBlock, 1))
}
