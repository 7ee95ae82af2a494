package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/session"
	bookingRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/payment"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
)

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Provider() string {
	return payment.ProviderStripe
}

func (m *MockPaymentGateway) Verify(ctx context.Context, referenceID *string, amount int, sessionID string) error {
	return m.Called(ctx, referenceID, amount, sessionID).Error(0)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, referenceID string) error {
	return m.Called(ctx, referenceID).Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookedHours(ctx context.Context, date string) ([]int, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockBookingRepository) IsPaymentReferenceUsed(ctx context.Context, referenceID string) (bool, error) {
	args := m.Called(ctx, referenceID)
	return args.Bool(0), args.Error(1)
}

// stubStripeAPI отдает заранее заданные PaymentIntent и запоминает возвраты
type stubStripeAPI struct {
	intents map[string]*stripe.PaymentIntent
	refunds []string
}

func (s *stubStripeAPI) CreatePaymentIntent(_ context.Context, _ *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error) {
	return nil, errors.New("not supported")
}

func (s *stubStripeAPI) RetrievePaymentIntent(_ context.Context, id string) (*stripe.PaymentIntent, error) {
	pi, ok := s.intents[id]
	if !ok {
		return nil, errors.New("no such payment_intent")
	}
	return pi, nil
}

func (s *stubStripeAPI) CreateRefund(_ context.Context, params *stripe.RefundCreateParams) (*stripe.Refund, error) {
	s.refunds = append(s.refunds, *params.PaymentIntent)
	return &stripe.Refund{ID: "re_" + *params.PaymentIntent}, nil
}

type MockTimeProvider struct {
	now time.Time
}

func (m *MockTimeProvider) Now() time.Time {
	return m.now
}

const (
	date      = "2026-10-20"
	sessionID = "session-1"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	repo     BookingRepository
	sessions *session.MemoryStore
	gateway  *MockPaymentGateway
	uc       *UseCase
}

func saveSelection(t *testing.T, sessions *session.MemoryStore, id string, hours ...int) {
	t.Helper()

	slots := domain.GenerateCatalog(date, nil, domain.NewPriceTable(nil))
	sel := domain.NewSelection(date)
	for _, h := range hours {
		slot, ok := domain.FindSlot(slots, h)
		require.True(t, ok)
		sel.Toggle(slot)
	}
	require.NoError(t, sessions.Save(context.Background(), id, sel))
}

func newFixture(t *testing.T, repo BookingRepository, hours ...int) *fixture {
	t.Helper()

	sessions := session.NewMemoryStore(time.Hour)
	saveSelection(t, sessions, sessionID, hours...)

	gateway := new(MockPaymentGateway)
	uc := NewUseCase(repo, sessions, gateway, memory.NewTxManager(), (*metrics.Metrics)(nil), time.UTC, logger.NewNop())
	uc.timeProvider = &MockTimeProvider{now: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)}

	return &fixture{repo: repo, sessions: sessions, gateway: gateway, uc: uc}
}

func TestExecute_AdvanceBooking(t *testing.T) {
	store := memory.NewBookingStore()
	f := newFixture(t, store, 19, 18)
	ref := strPtr("pi_abc")

	f.gateway.On("Verify", mock.Anything, ref, 720, sessionID).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:             42,
		SessionID:          sessionID,
		Mode:               domain.PaymentModeAdvance,
		PaymentReferenceID: ref,
		CustomerName:       strPtr("Arjun"),
		CustomerPhone:      strPtr("9876543210"),
	})
	require.NoError(t, err)

	b := resp.Booking
	assert.NotZero(t, b.ID)
	assert.Equal(t, int64(42), b.UserID)
	assert.Equal(t, date, b.Date)
	assert.Equal(t, 2, b.SlotCount)
	assert.Equal(t, 2400, b.TotalPrice)
	assert.Equal(t, 720, b.AdvancePaid)
	assert.Equal(t, 1680, b.BalanceDue)
	assert.Equal(t, domain.StatusAdvancePaid, b.Status)
	require.NotNil(t, b.PaymentReferenceID)
	assert.Equal(t, "pi_abc", *b.PaymentReferenceID)
	assert.Equal(t, []int{18, 19}, b.Hours())
	assert.Equal(t, 720, resp.ChargedAmount)

	booked, err := store.GetBookedHours(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, []int{18, 19}, booked)

	_, err = f.sessions.Get(context.Background(), sessionID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	f.gateway.AssertExpectations(t)
}

func TestExecute_FullBookingWithoutReference(t *testing.T) {
	f := newFixture(t, memory.NewBookingStore(), 7, 8, 9)

	f.gateway.On("Verify", mock.Anything, (*string)(nil), 2400, sessionID).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFullyPaid, resp.Booking.Status)
	assert.Equal(t, 2400, resp.Booking.AdvancePaid)
	assert.Equal(t, 0, resp.Booking.BalanceDue)
	assert.Nil(t, resp.Booking.PaymentReferenceID)
}

func TestExecute_SlotAlreadyBooked_Refunds(t *testing.T) {
	store := memory.NewBookingStore()
	existing := domain.NewSelection(date)
	slots := domain.GenerateCatalog(date, nil, domain.NewPriceTable(nil))
	slot, _ := domain.FindSlot(slots, 20)
	existing.Toggle(slot)
	_, err := store.Create(context.Background(),
		domain.ComposeBooking(existing, domain.PaymentModeFull, nil).ToBooking(7, domain.CustomerContact{}))
	require.NoError(t, err)

	f := newFixture(t, store, 20, 21)
	ref := strPtr("pi_late")
	f.gateway.On("Verify", mock.Anything, ref, 720, sessionID).Return(nil)
	f.gateway.On("Refund", mock.Anything, "pi_late").Return(nil)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeAdvance, PaymentReferenceID: ref})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// выбор не очищается, пользователь может изменить его
	sel, err := f.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Len())

	f.gateway.AssertExpectations(t)
}

func TestExecute_ConcurrentBookingDetectedInTransaction(t *testing.T) {
	repo := new(MockBookingRepository)
	f := newFixture(t, repo, 10)
	ref := strPtr("pi_race")

	f.gateway.On("Verify", mock.Anything, ref, 1000, sessionID).Return(nil)
	f.gateway.On("Refund", mock.Anything, "pi_race").Return(nil)
	repo.On("IsPaymentReferenceUsed", mock.Anything, "pi_race").Return(false, nil)
	repo.On("GetBookedHours", mock.Anything, date).Return([]int{}, nil).Once()
	repo.On("GetBookedHours", mock.Anything, date).Return([]int{10}, nil).Once()

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull, PaymentReferenceID: ref})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.gateway.AssertExpectations(t)
}

func TestExecute_PersistenceFailure_Refunds(t *testing.T) {
	repo := new(MockBookingRepository)
	f := newFixture(t, repo, 10)
	ref := strPtr("pi_fail")

	f.gateway.On("Verify", mock.Anything, ref, 300, sessionID).Return(nil)
	f.gateway.On("Refund", mock.Anything, "pi_fail").Return(errors.New("stripe down"))
	repo.On("IsPaymentReferenceUsed", mock.Anything, "pi_fail").Return(false, nil)
	repo.On("GetBookedHours", mock.Anything, date).Return([]int{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeAdvance, PaymentReferenceID: ref})
	assert.ErrorIs(t, err, ErrInternal)

	f.gateway.AssertExpectations(t)
}

func TestExecute_ReusedPaymentReference_Rejected(t *testing.T) {
	store := memory.NewBookingStore()
	f := newFixture(t, store, 18, 19)
	ref := strPtr("pi_once")

	f.gateway.On("Verify", mock.Anything, ref, 720, sessionID).Return(nil)
	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeAdvance, PaymentReferenceID: ref})
	require.NoError(t, err)

	// тот же платеж предъявлен для другой сессии и других часов
	saveSelection(t, f.sessions, "session-2", 20, 21)
	f.gateway.On("Verify", mock.Anything, ref, 720, "session-2").Return(nil)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 2, SessionID: "session-2", Mode: domain.PaymentModeAdvance, PaymentReferenceID: ref})
	assert.ErrorIs(t, err, ErrPaymentNotVerified)

	booked, err := store.GetBookedHours(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, []int{18, 19}, booked)

	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestExecute_ReusedPaymentReference_ThroughStripe(t *testing.T) {
	store := memory.NewBookingStore()
	f := newFixture(t, store, 18, 19)
	api := &stubStripeAPI{intents: map[string]*stripe.PaymentIntent{
		"pi_1": {
			ID:             "pi_1",
			Status:         stripe.PaymentIntentStatusSucceeded,
			AmountReceived: 72000,
			Currency:       stripe.CurrencyINR,
			Metadata:       map[string]string{"session_id": sessionID},
			LatestCharge:   &stripe.Charge{ID: "ch_1", Paid: true},
		},
	}}
	f.uc.gateway = payment.NewStripeGateway(api, "inr", logger.NewNop())

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeAdvance, PaymentReferenceID: strPtr("pi_1")})
	require.NoError(t, err)

	saveSelection(t, f.sessions, "session-2", 20, 21)
	_, err = f.uc.Execute(context.Background(), &Request{UserID: 2, SessionID: "session-2", Mode: domain.PaymentModeAdvance, PaymentReferenceID: strPtr("pi_1")})
	assert.ErrorIs(t, err, ErrPaymentNotVerified)

	all, err := store.List(context.Background(), domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Empty(t, api.refunds)
}

func TestExecute_RefundedPaymentReference_Rejected(t *testing.T) {
	store := memory.NewBookingStore()
	f := newFixture(t, store, 18, 19)
	api := &stubStripeAPI{intents: map[string]*stripe.PaymentIntent{
		"pi_refunded": {
			ID:             "pi_refunded",
			Status:         stripe.PaymentIntentStatusSucceeded,
			AmountReceived: 72000,
			Currency:       stripe.CurrencyINR,
			Metadata:       map[string]string{"session_id": sessionID},
			LatestCharge:   &stripe.Charge{ID: "ch_2", Paid: true, Refunded: true, AmountRefunded: 72000},
		},
	}}
	f.uc.gateway = payment.NewStripeGateway(api, "inr", logger.NewNop())

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeAdvance, PaymentReferenceID: strPtr("pi_refunded")})
	assert.ErrorIs(t, err, ErrPaymentNotVerified)

	booked, err := store.GetBookedHours(context.Background(), date)
	require.NoError(t, err)
	assert.Empty(t, booked)
	assert.Empty(t, api.refunds)
}

func TestExecute_ConcurrentReuseOfReference_NoRefund(t *testing.T) {
	repo := new(MockBookingRepository)
	f := newFixture(t, repo, 10)
	ref := strPtr("pi_twice")

	f.gateway.On("Verify", mock.Anything, ref, 300, sessionID).Return(nil)
	repo.On("IsPaymentReferenceUsed", mock.Anything, "pi_twice").Return(false, nil)
	repo.On("GetBookedHours", mock.Anything, date).Return([]int{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrDuplicatePaymentReference)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeAdvance, PaymentReferenceID: ref})
	assert.ErrorIs(t, err, ErrPaymentNotVerified)

	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestExecute_SlotTakenByBookingWithSameReference_NoRefund(t *testing.T) {
	repo := new(MockBookingRepository)
	f := newFixture(t, repo, 10)
	ref := strPtr("pi_same")

	f.gateway.On("Verify", mock.Anything, ref, 1000, sessionID).Return(nil)
	// до сохранения платеж свободен, после конфликта он уже принадлежит параллельному бронированию
	repo.On("IsPaymentReferenceUsed", mock.Anything, "pi_same").Return(false, nil).Once()
	repo.On("IsPaymentReferenceUsed", mock.Anything, "pi_same").Return(true, nil).Once()
	repo.On("GetBookedHours", mock.Anything, date).Return([]int{}, nil).Once()
	repo.On("GetBookedHours", mock.Anything, date).Return([]int{10}, nil).Once()

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull, PaymentReferenceID: ref})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestExecute_PaymentErrors(t *testing.T) {
	tests := []struct {
		name      string
		verifyErr error
		wantErr   error
	}{
		{name: "reference missing", verifyErr: payment.ErrReferenceRequired, wantErr: ErrPaymentReferenceRequired},
		{name: "not succeeded", verifyErr: payment.ErrNotVerified, wantErr: ErrPaymentNotVerified},
		{name: "amount mismatch", verifyErr: payment.ErrAmountMismatch, wantErr: ErrPaymentNotVerified},
		{name: "gateway down", verifyErr: payment.ErrGateway, wantErr: ErrPaymentGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBookingRepository)
			f := newFixture(t, repo, 12)
			f.gateway.On("Verify", mock.Anything, mock.Anything, 300, sessionID).Return(tt.verifyErr)

			_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeAdvance})
			assert.ErrorIs(t, err, tt.wantErr)

			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_RequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		hours   []int
		req     Request
		wantErr error
	}{
		{name: "no user", hours: []int{9}, req: Request{SessionID: sessionID, Mode: domain.PaymentModeFull}, wantErr: ErrInvalidInput},
		{name: "bad mode", hours: []int{9}, req: Request{UserID: 1, SessionID: sessionID, Mode: "later"}, wantErr: ErrInvalidInput},
		{name: "bad email", hours: []int{9}, req: Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull, CustomerEmail: strPtr("not-an-email")}, wantErr: ErrInvalidInput},
		{name: "blank name", hours: []int{9}, req: Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull, CustomerName: strPtr("  ")}, wantErr: ErrInvalidInput},
		{name: "unknown session", hours: []int{9}, req: Request{UserID: 1, SessionID: "nope", Mode: domain.PaymentModeFull}, wantErr: ErrSessionNotFound},
		{name: "empty selection", req: Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull}, wantErr: ErrEmptySelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, new(MockBookingRepository), tt.hours...)

			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRealTimeProvider_Location(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)

	uc := NewUseCase(new(MockBookingRepository), session.NewMemoryStore(time.Minute), new(MockPaymentGateway),
		memory.NewTxManager(), (*metrics.Metrics)(nil), ist, logger.NewNop())
	assert.Equal(t, ist, uc.timeProvider.Now().Location())
}

func TestExecute_DateInPastAtVenue(t *testing.T) {
	f := newFixture(t, new(MockBookingRepository), 9)
	ist := time.FixedZone("IST", 5*3600+30*60)
	// в UTC еще 20 октября, на площадке уже 21-е
	f.uc.timeProvider = &MockTimeProvider{now: time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC).In(ist)}

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull})
	assert.ErrorIs(t, err, ErrDateInPast)
	f.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(t, new(MockBookingRepository), 9)
	f.uc.timeProvider = &MockTimeProvider{now: time.Date(2026, 10, 21, 0, 5, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SessionID: sessionID, Mode: domain.PaymentModeFull})
	assert.ErrorIs(t, err, ErrDateInPast)
}
