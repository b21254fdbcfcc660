package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamslot/booking-service/internal/domain"
	bookingRepo "github.com/glamslot/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/internal/service/bookings/models"
	"github.com/glamslot/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	byID          map[int64]*domain.Booking
	cancelled     map[int64]domain.BookingStatus
	updated       map[int64]domain.BookingStatus
	clientResults []*domain.Booking
	artistResults []*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:      make(map[int64]*domain.Booking),
		cancelled: make(map[int64]domain.BookingStatus),
		updated:   make(map[int64]domain.BookingStatus),
	}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetAddOnsByBookingID(_ context.Context, _ int64) ([]*domain.BookingAddOn, error) {
	return nil, nil
}

func (f *fakeBookingRepo) GetByClientID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.clientResults, nil
}

func (f *fakeBookingRepo) GetByArtistWithFilter(_ context.Context, _ domain.ArtistBookingsFilter) ([]*domain.Booking, error) {
	return f.artistResults, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.updated[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, _ string) error {
	f.cancelled[id] = status
	return nil
}

type fakeScheduleRepo struct {
	settings *domain.ArtistSettings
}

func (f *fakeScheduleRepo) GetSettings(_ context.Context, _ int64) (*domain.ArtistSettings, error) {
	if f.settings == nil {
		return nil, scheduleRepo.ErrSettingsNotFound
	}
	return f.settings, nil
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

func confirmedBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:              1,
		ClientID:        5,
		ArtistID:        10,
		ServiceID:       100,
		BookingDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       mustTime(t, "14:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func newFixture(t *testing.T, now time.Time) (*fakeBookingRepo, *fakeScheduleRepo, *Service) {
	t.Helper()
	repo := newFakeBookingRepo()
	repo.byID[1] = confirmedBooking(t)
	schedRepo := &fakeScheduleRepo{
		settings: &domain.ArtistSettings{ArtistID: 10, CancelCutoffHours: 24},
	}
	svc := NewService(repo, schedRepo, &fakeTimeProvider{now: now}, nopLogger{})
	return repo, schedRepo, svc
}

func TestGetByID_Access(t *testing.T) {
	_, _, svc := newFixture(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("client sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "14:00", resp.StartTime)
	})

	t.Run("artist sees own booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 10)
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, 5)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel_ClientWithinWindow(t *testing.T) {
	// За 2 дня до начала, cutoff 24 часа
	repo, _, svc := newFixture(t, time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 5, CancellationReason: "changed plans"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelled[1])
}

func TestCancel_ClientAfterCutoffRejected(t *testing.T) {
	// За 3 часа до начала (14:00), cutoff 24 часа
	repo, _, svc := newFixture(t, time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 5})
	assert.ErrorIs(t, err, ErrCancelWindowPassed)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_ArtistIgnoresCutoff(t *testing.T) {
	// За час до начала мастер все еще может отменить
	repo, _, svc := newFixture(t, time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 10, CancellationReason: "sick leave"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByArtist, repo.cancelled[1])
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo, _, svc := newFixture(t, time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo, _, svc := newFixture(t, time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))
	repo.byID[1].Status = domain.StatusCancelledByClient

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 5})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_DefaultCutoffWhenNoSettings(t *testing.T) {
	repo, schedRepo, svc := newFixture(t, time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC))
	schedRepo.settings = nil

	// Дефолтный cutoff 24 часа: за 3 часа до начала уже поздно
	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 5})
	assert.ErrorIs(t, err, ErrCancelWindowPassed)
	assert.Empty(t, repo.cancelled)
}

func TestGetArtistBookings_OwnershipEnforced(t *testing.T) {
	_, _, svc := newFixture(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{
		UserID:   5,
		ArtistID: 10,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetArtistBookings(context.Background(), &models.GetArtistBookingsRequest{
		UserID:   10,
		ArtistID: 10,
	})
	assert.NoError(t, err)
}

func TestUpdateStatus_ArtistOnly(t *testing.T) {
	repo, _, svc := newFixture(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 5, Status: "completed"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updated[1])

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

// Отмены идут только через Cancel (политика cancelCutoffHours, reason,
// cancelled_at); возврат в confirmed не проходит проверку занятости.
// Прямая смена статуса принимает только completed и no_show
func TestUpdateStatus_OnlyTerminalArtistStatuses(t *testing.T) {
	repo, _, svc := newFixture(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC))

	for _, status := range []string{"cancelled_by_client", "cancelled_by_artist", "confirmed"} {
		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: status})
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q must be rejected", status)
	}
	assert.Empty(t, repo.updated)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "no_show"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, repo.updated[1])
}
