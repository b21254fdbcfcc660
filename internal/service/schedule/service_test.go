package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamslot/booking-service/internal/domain"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	windows  []*domain.TimeWindow
	blocks   []*domain.BlockedInterval
	settings *domain.ArtistSettings

	deletedWindows []int64
	deletedBlocks  []int64
	nextID         int64
}

func (f *fakeScheduleRepo) CreateWindow(_ context.Context, window *domain.TimeWindow) (*domain.TimeWindow, error) {
	f.nextID++
	w := *window
	w.ID = f.nextID
	w.CreatedAt = time.Now()
	f.windows = append(f.windows, &w)
	return &w, nil
}

func (f *fakeScheduleRepo) GetWindowsByArtist(_ context.Context, artistID int64) ([]*domain.TimeWindow, error) {
	out := make([]*domain.TimeWindow, 0, len(f.windows))
	for _, w := range f.windows {
		if w.ArtistID == artistID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetWindowsByArtistAndDay(_ context.Context, artistID int64, day int) ([]*domain.TimeWindow, error) {
	out := make([]*domain.TimeWindow, 0, len(f.windows))
	for _, w := range f.windows {
		if w.ArtistID == artistID && w.Day == day {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetWindowByID(_ context.Context, id int64) (*domain.TimeWindow, error) {
	for _, w := range f.windows {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, scheduleRepo.ErrWindowNotFound
}

func (f *fakeScheduleRepo) DeleteWindow(_ context.Context, id int64) error {
	f.deletedWindows = append(f.deletedWindows, id)
	return nil
}

func (f *fakeScheduleRepo) GetBlockedIntervalsFrom(_ context.Context, _ int64, _ time.Time) ([]*domain.BlockedInterval, error) {
	return f.blocks, nil
}

func (f *fakeScheduleRepo) GetBlockedIntervalByID(_ context.Context, id int64) (*domain.BlockedInterval, error) {
	for _, b := range f.blocks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, scheduleRepo.ErrBlockNotFound
}

func (f *fakeScheduleRepo) DeleteBlockedInterval(_ context.Context, id int64) error {
	f.deletedBlocks = append(f.deletedBlocks, id)
	return nil
}

func (f *fakeScheduleRepo) GetSettings(_ context.Context, _ int64) (*domain.ArtistSettings, error) {
	if f.settings == nil {
		return nil, scheduleRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeScheduleRepo) UpsertSettings(_ context.Context, settings *domain.ArtistSettings) (*domain.ArtistSettings, error) {
	f.settings = settings
	return settings, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newFixture() (*fakeScheduleRepo, *Service) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, &fakeTxManager{}, &fakeTimeProvider{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}, nopLogger{})
	return repo, svc
}

func addWindowRequest(day, start, end int) *models.AddWindowRequest {
	return &models.AddWindowRequest{
		UserID:      10,
		ArtistID:    10,
		Day:         day,
		StartMinute: start,
		EndMinute:   end,
	}
}

func TestAddWindow_Created(t *testing.T) {
	repo, svc := newFixture()

	resp, err := svc.AddWindow(context.Background(), addWindowRequest(0, 540, 720))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Day)
	assert.Equal(t, 540, resp.StartMinute)
	assert.Len(t, repo.windows, 1)
}

func TestAddWindow_OverlapRejected(t *testing.T) {
	_, svc := newFixture()

	_, err := svc.AddWindow(context.Background(), addWindowRequest(0, 540, 720))
	require.NoError(t, err)

	// Пересечение хотя бы одной минутой отклоняется
	_, err = svc.AddWindow(context.Background(), addWindowRequest(0, 700, 800))
	assert.ErrorIs(t, err, ErrWindowConflict)

	// Полное вложение тоже
	_, err = svc.AddWindow(context.Background(), addWindowRequest(0, 600, 660))
	assert.ErrorIs(t, err, ErrWindowConflict)
}

func TestAddWindow_AdjacentAllowed(t *testing.T) {
	repo, svc := newFixture()

	_, err := svc.AddWindow(context.Background(), addWindowRequest(0, 540, 720))
	require.NoError(t, err)

	// Смежное окно (конец одного равен началу другого) не пересекается
	_, err = svc.AddWindow(context.Background(), addWindowRequest(0, 720, 1020))
	assert.NoError(t, err)
	assert.Len(t, repo.windows, 2)
}

func TestAddWindow_OtherDayIgnored(t *testing.T) {
	_, svc := newFixture()

	_, err := svc.AddWindow(context.Background(), addWindowRequest(0, 540, 720))
	require.NoError(t, err)

	// То же время в другой день не конфликтует
	_, err = svc.AddWindow(context.Background(), addWindowRequest(1, 540, 720))
	assert.NoError(t, err)
}

func TestAddWindow_Validation(t *testing.T) {
	_, svc := newFixture()

	cases := []struct {
		name string
		req  *models.AddWindowRequest
	}{
		{"day out of range", addWindowRequest(7, 540, 720)},
		{"negative day", addWindowRequest(-1, 540, 720)},
		{"start after end", addWindowRequest(0, 720, 540)},
		{"start equals end", addWindowRequest(0, 540, 540)},
		{"end beyond day", addWindowRequest(0, 540, 1441)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddWindow(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAddWindow_ForeignScheduleRejected(t *testing.T) {
	_, svc := newFixture()

	req := addWindowRequest(0, 540, 720)
	req.UserID = 99

	_, err := svc.AddWindow(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteWindow_Ownership(t *testing.T) {
	repo, svc := newFixture()

	_, err := svc.AddWindow(context.Background(), addWindowRequest(0, 540, 720))
	require.NoError(t, err)

	err = svc.DeleteWindow(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deletedWindows)

	err = svc.DeleteWindow(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deletedWindows)

	err = svc.DeleteWindow(context.Background(), 404, 10)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestDeleteBlockedDate_Ownership(t *testing.T) {
	repo, svc := newFixture()
	repo.blocks = []*domain.BlockedInterval{
		{ID: 3, ArtistID: 10, StartMinute: 600, EndMinute: 660, Units: 1},
	}

	err := svc.DeleteBlockedDate(context.Background(), 3, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeleteBlockedDate(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, repo.deletedBlocks)
}

func TestGetSchedule_DefaultsWhenNoSettings(t *testing.T) {
	_, svc := newFixture()

	resp, err := svc.GetSchedule(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultUnitCount, resp.Settings.UnitCount)
	assert.Equal(t, domain.DefaultBookingMonthLimit, resp.Settings.BookingMonthLimit)
	assert.Empty(t, resp.Windows)
}

func TestUpdateSettings_BoundsValidated(t *testing.T) {
	repo, svc := newFixture()

	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID: 10, ArtistID: 10, UnitCount: 0, BookingMonthLimit: 3, CancelCutoffHours: 24,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID: 10, ArtistID: 10, UnitCount: 3, BookingMonthLimit: 13, CancelCutoffHours: 24,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID: 10, ArtistID: 10, UnitCount: 3, BookingMonthLimit: 6, CancelCutoffHours: 48,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.UnitCount)
	require.NotNil(t, repo.settings)
	assert.Equal(t, 48, repo.settings.CancelCutoffHours)
}

func TestUpdateSettings_ForeignRejected(t *testing.T) {
	_, svc := newFixture()

	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID: 99, ArtistID: 10, UnitCount: 2, BookingMonthLimit: 3, CancelCutoffHours: 24,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
