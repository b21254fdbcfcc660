package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamslot/booking-service/internal/domain"
	catalogRepo "github.com/glamslot/booking-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/glamslot/booking-service/internal/infra/storage/schedule"
	"github.com/glamslot/booking-service/internal/integrations/paymentservice"
	"github.com/glamslot/booking-service/pkg/ptr"
	"github.com/glamslot/booking-service/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
	addOns   []*domain.BookingAddOn
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	b := *booking
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = &b
	return &b, nil
}

func (f *fakeBookingRepo) CreateAddOns(_ context.Context, bookingID int64, addOns []*domain.BookingAddOn) error {
	f.addOns = append(f.addOns, addOns...)
	return nil
}

func (f *fakeBookingRepo) GetByArtistWithFilter(_ context.Context, _ domain.ArtistBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	settings *domain.ArtistSettings
	windows  []*domain.TimeWindow
	blocks   []*domain.BlockedInterval
}

func (f *fakeScheduleRepo) GetSettings(_ context.Context, artistID int64) (*domain.ArtistSettings, error) {
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
		a, ok := f.addOns[id]
		if !ok {
			return nil, catalogRepo.ErrAddOnNotFound
		}
		out = append(out, a)
	}
	return out, nil
}

type fakePaymentClient struct {
	paid     bool
	degraded bool
	calls    int
}

func (f *fakePaymentClient) VerifyDeposit(_ context.Context, clientID, serviceID int64) (bool, error) {
	f.calls++
	if f.degraded {
		return false, paymentservice.ErrServiceDegraded
	}
	return f.paid, nil
}

// fakeTxManager выполняет функцию напрямую, без транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

// --- хелперы ---

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newFixture() (*fakeBookingRepo, *fakeScheduleRepo, *fakeCatalogRepo, *fakePaymentClient, *UseCase) {
	bookingRepo := &fakeBookingRepo{}
	schedRepo := &fakeScheduleRepo{
		settings: &domain.ArtistSettings{
			ArtistID:          10,
			UnitCount:         2,
			BookingMonthLimit: 3,
			CancelCutoffHours: 24,
		},
		windows: []*domain.TimeWindow{
			// Понедельник 09:00 - 17:00
			{ID: 1, ArtistID: 10, Day: 0, StartMinute: 540, EndMinute: 1020},
		},
	}
	catRepo := &fakeCatalogRepo{
		service: &domain.Service{
			ID:              100,
			ArtistID:        10,
			Name:            "Gel manicure",
			Price:           55.0,
			DurationMinutes: 60,
		},
		addOns: map[int64]*domain.AddOn{
			7: {ID: 7, ServiceID: 100, Name: "Nail art", Price: 15.0, DurationMinutes: 30},
			8: {ID: 8, ServiceID: 999, Name: "Other service add-on", Price: 5.0, DurationMinutes: 15},
		},
	}
	payment := &fakePaymentClient{}

	uc := NewUseCase(bookingRepo, schedRepo, catRepo, payment, &fakeTxManager{}, nopLogger{})
	// 2024-01-01 - понедельник
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2023, 12, 20, 12, 0, 0, 0, time.UTC)}

	return bookingRepo, schedRepo, catRepo, payment, uc
}

func baseRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		ClientID:  1,
		ServiceID: 100,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime: mustTime(t, "10:00"),
	}
}

// --- тесты ---

func TestExecute_FirstBookingAdmitted(t *testing.T) {
	bookingRepo, _, _, _, uc := newFixture()

	resp, err := uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ArtistID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Gel manicure", resp.ServiceName)
	require.NotNil(t, bookingRepo.created)
	assert.Empty(t, bookingRepo.addOns)
}

func TestExecute_AddOnsExtendDurationAndPersist(t *testing.T) {
	bookingRepo, _, _, _, uc := newFixture()

	req := baseRequest(t)
	req.AddOnIDs = []int64{7}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 90, resp.DurationMinutes, "service 60 + add-on 30")
	require.Len(t, bookingRepo.addOns, 1)
	assert.Equal(t, resp.ID, bookingRepo.addOns[0].BookingID)
	assert.Equal(t, int64(7), bookingRepo.addOns[0].AddOnID)
}

func TestExecute_AddOnFromAnotherServiceRejected(t *testing.T) {
	_, _, _, _, uc := newFixture()

	req := baseRequest(t)
	req.AddOnIDs = []int64{8}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAddOnNotFound)
}

func TestExecute_CapacityExhausted(t *testing.T) {
	bookingRepo, _, _, _, uc := newFixture()

	// unitCount=2, два активных бронирования на тот же интервал
	bookingRepo.bookings = []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, StartTime: mustTime(t, "10:00"), DurationMinutes: 60},
		{ID: 2, Status: domain.StatusConfirmed, StartTime: mustTime(t, "10:00"), DurationMinutes: 60},
	}

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingsFreeCapacity(t *testing.T) {
	bookingRepo, _, _, _, uc := newFixture()

	bookingRepo.bookings = []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, StartTime: mustTime(t, "10:00"), DurationMinutes: 60},
		{ID: 2, Status: domain.StatusCancelledByClient, StartTime: mustTime(t, "10:00"), DurationMinutes: 60},
	}

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.NoError(t, err)
}

func TestExecute_BlockedIntervalRejects(t *testing.T) {
	_, schedRepo, _, _, uc := newFixture()

	schedRepo.settings.UnitCount = 1
	schedRepo.blocks = []*domain.BlockedInterval{
		{ID: 1, ArtistID: 10, StartMinute: 600, EndMinute: 660, Units: 1},
	}

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OutsideWindowRejected(t *testing.T) {
	_, _, _, _, uc := newFixture()

	req := baseRequest(t)
	req.StartTime = mustTime(t, "16:30") // 16:30 + 60 минут выходит за 17:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	_, _, _, _, uc := newFixture()

	req := baseRequest(t)
	req.Date = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) // вторник, окон нет

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AddressRequired(t *testing.T) {
	bookingRepo, _, catRepo, _, uc := newFixture()

	catRepo.service.RequiresAddress = true

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrAddressRequired)
	assert.Nil(t, bookingRepo.created)

	req := baseRequest(t)
	req.HomeAddress = ptr.Ptr("5 High Street")

	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_DateInPast(t *testing.T) {
	_, _, _, _, uc := newFixture()

	req := baseRequest(t)
	req.Date = time.Date(2023, 12, 18, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondMonthLimit(t *testing.T) {
	_, schedRepo, _, _, uc := newFixture()

	schedRepo.settings.BookingMonthLimit = 1

	req := baseRequest(t)
	req.Date = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC) // понедельник, но дальше месяца

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// bookingMonthLimit = 0 снимает ограничение полностью
	schedRepo.settings.BookingMonthLimit = 0
	req.Date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // понедельник через полтора года

	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_DefaultSettingsWhenMissing(t *testing.T) {
	_, schedRepo, _, _, uc := newFixture()

	schedRepo.settings = nil

	// Дефолтный unitCount=1: первое бронирование проходит
	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.NoError(t, err)
}

func TestExecute_DepositRequired(t *testing.T) {
	_, _, catRepo, payment, uc := newFixture()

	catRepo.service.RequiresDeposit = true

	_, err := uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrDepositRequired)

	payment.paid = true
	resp, err := uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.True(t, resp.DepositVerified)
}

func TestExecute_PaymentDegradationProceedsUnverified(t *testing.T) {
	_, _, catRepo, payment, uc := newFixture()

	catRepo.service.RequiresDeposit = true
	payment.degraded = true

	resp, err := uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.False(t, resp.DepositVerified)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	_, _, _, _, uc := newFixture()

	req := baseRequest(t)
	req.ServiceID = 404

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	_, _, _, _, uc := newFixture()

	req := baseRequest(t)
	req.ClientID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
