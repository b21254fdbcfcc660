package add_blocked_date

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamslot/booking-service/internal/domain"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByArtistWithFilter(_ context.Context, _ domain.ArtistBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	settings *domain.ArtistSettings
	windows  []*domain.TimeWindow
	blocks   []*domain.BlockedInterval
	created  *domain.BlockedInterval
}

func (f *fakeScheduleRepo) GetSettings(_ context.Context, _ int64) (*domain.ArtistSettings, error) {
	if f.settings == nil {
		return nil, scheduleRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeScheduleRepo) GetWindowsByArtistAndDay(_ context.Context, _ int64, day int) ([]*domain.TimeWindow, error) {
	out := make([]*domain.TimeWindow, 0, len(f.windows))
	for _, w := range f.windows {
		if w.Day == day {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetBlockedIntervals(_ context.Context, _ int64, _ time.Time) ([]*domain.BlockedInterval, error) {
	return f.blocks, nil
}

func (f *fakeScheduleRepo) CreateBlockedInterval(_ context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	b := *block
	b.ID = 1
	b.CreatedAt = time.Now()
	f.created = &b
	return &b, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newFixture(unitCount int) (*fakeBookingRepo, *fakeScheduleRepo, *UseCase) {
	bookingRepo := &fakeBookingRepo{}
	// 2024-01-02 - вторник (день 1), окно 09:00-17:00
	schedRepo := &fakeScheduleRepo{
		settings: &domain.ArtistSettings{ArtistID: 10, UnitCount: unitCount},
		windows: []*domain.TimeWindow{
			{ID: 1, ArtistID: 10, Day: 1, StartMinute: 540, EndMinute: 1020},
		},
	}
	uc := NewUseCase(bookingRepo, schedRepo, &fakeTxManager{}, nopLogger{})
	return bookingRepo, schedRepo, uc
}

func baseRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		UserID:    10,
		ArtistID:  10,
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		StartTime: mustTime(t, "10:00"),
		EndTime:   mustTime(t, "12:00"),
		Units:     1,
	}
}

func TestExecute_BlockCreated(t *testing.T) {
	_, schedRepo, uc := newFixture(2)

	resp, err := uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.Equal(t, 600, resp.StartMinute)
	assert.Equal(t, 720, resp.EndMinute)
	assert.Equal(t, 1, resp.Units)
	require.NotNil(t, schedRepo.created)
	assert.Equal(t, 1, schedRepo.created.Units)
}

func TestExecute_StartAfterEndRejected(t *testing.T) {
	_, schedRepo, uc := newFixture(2)

	req := baseRequest(t)
	req.StartTime = mustTime(t, "12:00")
	req.EndTime = mustTime(t, "10:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Nil(t, schedRepo.created)
}

func TestExecute_EqualStartAndEndRejected(t *testing.T) {
	_, _, uc := newFixture(2)

	req := baseRequest(t)
	req.EndTime = req.StartTime

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_UnitsExceedFreeCapacity(t *testing.T) {
	bookingRepo, _, uc := newFixture(2)

	// Одно активное бронирование оставляет одно свободное место
	bookingRepo.bookings = []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, StartTime: mustTime(t, "10:30"), DurationMinutes: 60},
	}

	req := baseRequest(t)
	req.Units = 2

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotEnoughArtists)

	req.Units = 1
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// Существующая блокировка вычитает из timeline ровно 1 место независимо
// от своего Units: вторая блокировка на 1 место при capacity 2 проходит,
// даже если первая записана с Units=2
func TestExecute_ExistingBlockDecrementsByOne(t *testing.T) {
	_, schedRepo, uc := newFixture(2)

	schedRepo.blocks = []*domain.BlockedInterval{
		{ID: 5, ArtistID: 10, StartMinute: 600, EndMinute: 720, Units: 2},
	}

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.NoError(t, err)
}

// Блокировка, как и бронирование, должна целиком лежать в одном окне
// недельного расписания
func TestExecute_OutsideAnyWindowRejected(t *testing.T) {
	_, schedRepo, uc := newFixture(2)

	// День закрыт полностью
	schedRepo.windows = nil

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, schedRepo.created)
}

func TestExecute_PartiallyCoveredIntervalRejected(t *testing.T) {
	_, schedRepo, uc := newFixture(2)

	// Окно кончается в 11:00, блокировка 10:00-12:00 вылезает за край
	schedRepo.windows = []*domain.TimeWindow{
		{ID: 1, ArtistID: 10, Day: 1, StartMinute: 540, EndMinute: 660},
	}

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, schedRepo.created)
}

func TestExecute_ForeignScheduleRejected(t *testing.T) {
	_, _, uc := newFixture(2)

	req := baseRequest(t)
	req.UserID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InvalidUnits(t *testing.T) {
	_, _, uc := newFixture(2)

	req := baseRequest(t)
	req.Units = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DefaultSettingsSingleUnit(t *testing.T) {
	_, schedRepo, uc := newFixture(1)
	schedRepo.settings = nil

	// Дефолтный unitCount=1: блокировка единственного места проходит
	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.NoError(t, err)

	// А резерв двух мест - нет
	req := baseRequest(t)
	req.Units = 2
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotEnoughArtists)
}
