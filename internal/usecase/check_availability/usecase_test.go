package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamslot/booking-service/internal/domain"
	catalogRepo "github.com/glamslot/booking-service/internal/infra/storage/catalog"
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

type fakeCatalogRepo struct {
	service *domain.Service
	addOns  map[int64]*domain.AddOn
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeCatalogRepo) GetAddOnsByIDs(_ context.Context, ids []int64) ([]*domain.AddOn, error) {
	out := make([]*domain.AddOn, 0, len(ids))
	for _, id := range ids {
		if a, ok := f.addOns[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
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

func newFixture() (*fakeBookingRepo, *fakeScheduleRepo, *fakeCatalogRepo, *UseCase) {
	bookingRepo := &fakeBookingRepo{}
	schedRepo := &fakeScheduleRepo{
		settings: &domain.ArtistSettings{ArtistID: 10, UnitCount: 2, BookingMonthLimit: 3},
		windows: []*domain.TimeWindow{
			// Понедельник: два смежных окна 09:00-12:00 и 12:00-17:00
			{ID: 1, ArtistID: 10, Day: 0, StartMinute: 540, EndMinute: 720},
			{ID: 2, ArtistID: 10, Day: 0, StartMinute: 720, EndMinute: 1020},
		},
	}
	catRepo := &fakeCatalogRepo{
		service: &domain.Service{ID: 100, ArtistID: 10, Name: "Gel manicure", DurationMinutes: 60},
		addOns: map[int64]*domain.AddOn{
			7: {ID: 7, ServiceID: 100, Name: "Nail art", DurationMinutes: 60},
		},
	}

	uc := NewUseCase(bookingRepo, schedRepo, catRepo, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2023, 12, 20, 12, 0, 0, 0, time.UTC)}

	return bookingRepo, schedRepo, catRepo, uc
}

func baseRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		ArtistID:  10,
		ServiceID: 100,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), // понедельник
		StartTime: mustTime(t, "10:00"),
	}
}

func TestExecute_Available(t *testing.T) {
	_, _, _, uc := newFixture()

	resp, err := uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_FullSlotsReported(t *testing.T) {
	bookingRepo, _, _, uc := newFixture()

	bookingRepo.bookings = []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, StartTime: mustTime(t, "10:00"), DurationMinutes: 60},
		{ID: 2, Status: domain.StatusConfirmed, StartTime: mustTime(t, "10:00"), DurationMinutes: 60},
	}

	resp, err := uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, ReasonSlotNotAvailable, resp.Reason)
}

// Запрос, накрывающий границу двух смежных окон, считается закрытым:
// окна не сливаются
func TestExecute_SpanningAdjacentWindowsRejected(t *testing.T) {
	_, _, _, uc := newFixture()

	req := baseRequest(t)
	req.StartTime = mustTime(t, "11:30") // 11:30 + 60 минут пересекает границу 12:00

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Available)

	// Та же услуга целиком внутри второго окна проходит
	req.StartTime = mustTime(t, "12:00")
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_AddOnsExtendCheckedInterval(t *testing.T) {
	bookingRepo, _, _, uc := newFixture()

	// Вторая половина удлиненного интервала занята полностью
	bookingRepo.bookings = []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, StartTime: mustTime(t, "11:00"), DurationMinutes: 60},
		{ID: 2, Status: domain.StatusConfirmed, StartTime: mustTime(t, "11:00"), DurationMinutes: 60},
	}

	// Без add-on'а [10:00, 11:00) свободен
	resp, err := uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.True(t, resp.Available)

	// С add-on'ом интервал [10:00, 12:00) упирается в занятые бакеты
	req := baseRequest(t)
	req.AddOnIDs = []int64{7}

	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 120, resp.DurationMinutes)
}

func TestExecute_PastDateNotBookable(t *testing.T) {
	_, _, _, uc := newFixture()

	req := baseRequest(t)
	req.Date = time.Date(2023, 12, 18, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, ReasonDateNotBookable, resp.Reason)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	_, _, _, uc := newFixture()

	req := baseRequest(t)
	req.ServiceID = 404

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
