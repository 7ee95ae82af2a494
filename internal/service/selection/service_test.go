package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/session"
	"github.com/m04kA/SMC-TurfBookingService/internal/service/selection/models"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
)

type MockBookedHoursReader struct {
	mock.Mock
}

func (m *MockBookedHoursReader) GetBookedHours(ctx context.Context, date string) ([]int, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) PriceTable(ctx context.Context) (domain.PriceTable, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PriceTable), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

const today = "2026-10-15"

type fixture struct {
	booked  *MockBookedHoursReader
	prices  *MockPriceSource
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		booked: new(MockBookedHoursReader),
		prices: new(MockPriceSource),
	}
	f.service = NewService(session.NewMemoryStore(30*time.Minute), f.booked, f.prices, time.UTC, logger.NewNop())
	f.service.timeProvider = fixedTime{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	f.prices.On("PriceTable", mock.Anything).Return(domain.NewPriceTable(nil), nil).Maybe()
	return f
}

func hour(h int) *int { return &h }

func TestService_Start(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Start(ctx, &models.StartRequest{Date: today})
	require.NoError(t, err)

	_, err = uuid.Parse(resp.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, today, resp.Date)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, resp.TotalPrice)

	got, err := f.service.Get(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, today, got.Date)
}

func TestService_Start_RejectsBadDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Start(ctx, &models.StartRequest{Date: "2026-10-14"})
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = f.service.Start(ctx, &models.StartRequest{Date: "15/10/2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_Toggle_ChronologicalOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booked.On("GetBookedHours", mock.Anything, today).Return([]int{}, nil)

	started, err := f.service.Start(ctx, &models.StartRequest{Date: today})
	require.NoError(t, err)

	var resp *models.SelectionResponse
	for _, h := range []int{23, 7, 0, 15} {
		resp, err = f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: today, Hour: hour(h)})
		require.NoError(t, err)
		require.True(t, *resp.Changed)
	}

	hours := make([]int, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		hours = append(hours, s.Hour)
	}
	assert.Equal(t, []int{7, 15, 23, 0}, hours)
	assert.Equal(t, 800+1000+1000+1000, resp.TotalPrice)
	assert.Equal(t, "₹3,800", resp.TotalPriceLabel)

	resp, err = f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: today, Hour: hour(15)})
	require.NoError(t, err)
	assert.True(t, *resp.Changed)
	assert.Equal(t, 3, resp.SlotCount)
}

func TestService_Toggle_BookedSlotIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booked.On("GetBookedHours", mock.Anything, today).Return([]int{18}, nil)

	started, err := f.service.Start(ctx, &models.StartRequest{Date: today})
	require.NoError(t, err)

	resp, err := f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: today, Hour: hour(18)})
	require.NoError(t, err)
	assert.False(t, *resp.Changed)
	assert.Empty(t, resp.Slots)
}

func TestService_Toggle_OtherDateSwitchesSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booked.On("GetBookedHours", mock.Anything, mock.Anything).Return([]int{}, nil)

	started, err := f.service.Start(ctx, &models.StartRequest{Date: today})
	require.NoError(t, err)

	_, err = f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: today, Hour: hour(10)})
	require.NoError(t, err)

	resp, err := f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: "2026-10-16", Hour: hour(11)})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2026-10-16-11", resp.Slots[0].ID)
}

func TestService_Toggle_UsesOverriddenPrice(t *testing.T) {
	f := &fixture{booked: new(MockBookedHoursReader), prices: new(MockPriceSource)}
	f.service = NewService(session.NewMemoryStore(time.Minute), f.booked, f.prices, time.UTC, logger.NewNop())
	f.service.timeProvider = fixedTime{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	f.prices.On("PriceTable", mock.Anything).Return(domain.NewPriceTable([]domain.PriceOverride{{Hour: 20, Price: 1500}}), nil)
	f.booked.On("GetBookedHours", mock.Anything, today).Return([]int{}, nil)

	started, err := f.service.Start(ctx, &models.StartRequest{Date: today})
	require.NoError(t, err)

	resp, err := f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: today, Hour: hour(20)})
	require.NoError(t, err)
	assert.Equal(t, 1500, resp.TotalPrice)
}

func TestService_Toggle_FailsOpenOnStoreError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booked.On("GetBookedHours", mock.Anything, today).Return(nil, errors.New("db down"))

	started, err := f.service.Start(ctx, &models.StartRequest{Date: today})
	require.NoError(t, err)

	resp, err := f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: today, Hour: hour(9)})
	require.NoError(t, err)
	assert.True(t, *resp.Changed)
}

func TestService_Toggle_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Toggle(ctx, "missing", &models.ToggleRequest{Date: today, Hour: hour(9)})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.service.Toggle(ctx, "missing", &models.ToggleRequest{Date: today, Hour: hour(3)})
	assert.ErrorIs(t, err, ErrInvalidHour)

	_, err = f.service.Toggle(ctx, "missing", &models.ToggleRequest{Date: today})
	assert.ErrorIs(t, err, ErrInvalidHour)
}

func TestService_SetDateAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.booked.On("GetBookedHours", mock.Anything, mock.Anything).Return([]int{}, nil)

	started, err := f.service.Start(ctx, &models.StartRequest{Date: today})
	require.NoError(t, err)
	_, err = f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: today, Hour: hour(12)})
	require.NoError(t, err)

	resp, err := f.service.SetDate(ctx, started.SessionID, &models.SetDateRequest{Date: today})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SlotCount)

	resp, err = f.service.SetDate(ctx, started.SessionID, &models.SetDateRequest{Date: "2026-10-20"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SlotCount)
	assert.Equal(t, "2026-10-20", resp.Date)

	_, err = f.service.Toggle(ctx, started.SessionID, &models.ToggleRequest{Date: "2026-10-20", Hour: hour(12)})
	assert.NoError(t, err)

	resp, err = f.service.Clear(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SlotCount)
	assert.Equal(t, "2026-10-20", resp.Date)
}
