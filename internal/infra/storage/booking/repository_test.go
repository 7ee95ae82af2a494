package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
)

func newMockRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

var headerColumns = []string{
	"id", "user_id", "booking_date", "slot_count", "total_price", "advance_paid", "balance_due",
	"status", "payment_mode", "payment_reference_id", "customer_name", "customer_phone",
	"customer_email", "created_at", "updated_at",
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ref := "pi_1"

	booking := &domain.Booking{
		UserID:             7,
		Date:               "2025-03-10",
		SlotCount:          2,
		TotalPrice:         2200,
		AdvancePaid:        660,
		BalanceDue:         1540,
		Status:             domain.StatusAdvancePaid,
		PaymentMode:        domain.PaymentModeAdvance,
		PaymentReferenceID: &ref,
		Slots: []domain.BookingSlot{
			{StartHour: 16, EndHour: 17, TimeRangeLabel: "4:00 PM - 5:00 PM", Price: 1000},
			{StartHour: 17, EndHour: 18, TimeRangeLabel: "5:00 PM - 6:00 PM", Price: 1200},
		},
	}

	mock.ExpectQuery(`INSERT INTO bookings \(user_id,booking_date,slot_count,total_price,advance_paid,balance_due,status,payment_mode,payment_reference_id,customer_name,customer_phone,customer_email\)`).
		WithArgs(int64(7), "2025-03-10", 2, 2200, 660, 1540, "advance_paid", "advance", "pi_1", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	mock.ExpectQuery(`INSERT INTO booking_slots \(booking_id,booking_date,start_hour,end_hour,time_range_label,price\)`).
		WithArgs(
			int64(11), "2025-03-10", 16, 17, "4:00 PM - 5:00 PM", 1000,
			int64(11), "2025-03-10", 17, 18, "5:00 PM - 6:00 PM", 1200,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)).AddRow(int64(102)))

	created, err := repo.Create(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, int64(101), created.Slots[0].ID)
	assert.Equal(t, int64(102), created.Slots[1].ID)
	assert.Equal(t, int64(11), created.Slots[1].BookingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_HeaderFails(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Booking{Date: "2025-03-10"})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicatePaymentReference(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	ref := "pi_1"

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_bookings_payment_reference_id"})

	_, err := repo.Create(context.Background(), &domain.Booking{Date: "2025-03-10", PaymentReferenceID: &ref})
	assert.ErrorIs(t, err, ErrDuplicatePaymentReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OtherUniqueViolation(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_pkey"})

	_, err := repo.Create(context.Background(), &domain.Booking{Date: "2025-03-10"})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrDuplicatePaymentReference)
}

func TestRepository_IsPaymentReferenceUsed(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE payment_reference_id = \$1`).
		WithArgs("pi_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE payment_reference_id = \$1`).
		WithArgs("pi_2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	used, err := repo.IsPaymentReferenceUsed(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.True(t, used)

	used, err = repo.IsPaymentReferenceUsed(context.Background(), "pi_2")
	require.NoError(t, err)
	assert.False(t, used)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBookedHours(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT bs.start_hour FROM booking_slots bs JOIN bookings b ON b.id = bs.booking_id WHERE bs.booking_date = \$1 AND b.status <> \$2 ORDER BY bs.start_hour ASC$`).
		WithArgs("2025-03-10", "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"start_hour"}).AddRow(0).AddRow(18).AddRow(19))

	hours, err := repo.GetBookedHours(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 18, 19}, hours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBookedHours_LocksInsideTransaction(t *testing.T) {
	repo, wrapped, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT bs.start_hour FROM booking_slots bs .* FOR UPDATE`).
		WithArgs("2025-03-10", "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"start_hour"}))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), &sql.TxOptions{})
	require.NoError(t, err)

	hours, err := repo.GetBookedHours(dbmetrics.WithTx(context.Background(), tx), "2025-03-10")
	require.NoError(t, err)
	assert.Empty(t, hours)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	now := time.Now().UTC()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, user_id, booking_date, .* FROM bookings WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(headerColumns).
			AddRow(int64(5), int64(7), date, 2, 2000, 2000, 0, "fully_paid", "full", nil, "Asha", nil, nil, now, now))

	mock.ExpectQuery(`SELECT id, booking_id, start_hour, end_hour, time_range_label, price FROM booking_slots WHERE booking_id IN \(\$1\)`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "start_hour", "end_hour", "time_range_label", "price"}).
			AddRow(int64(1), int64(5), 23, 0, "11:00 PM - 12:00 AM", 1000).
			AddRow(int64(2), int64(5), 0, 1, "12:00 AM - 1:00 AM", 1000))

	b, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", b.Date)
	assert.Equal(t, domain.StatusFullyPaid, b.Status)
	assert.Equal(t, domain.PaymentModeFull, b.PaymentMode)
	assert.Nil(t, b.PaymentReferenceID)
	require.NotNil(t, b.CustomerName)
	assert.Equal(t, "Asha", *b.CustomerName)
	assert.Equal(t, []int{23, 0}, b.Hours())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(headerColumns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_List_WithFilter(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	userID := int64(7)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM bookings WHERE user_id = \$1 AND status IN \(\$2,\$3\) ORDER BY booking_date DESC, id DESC LIMIT 10`).
		WithArgs(int64(7), "advance_paid", "fully_paid").
		WillReturnRows(sqlmock.NewRows(headerColumns).
			AddRow(int64(2), int64(7), date, 1, 800, 240, 560, "advance_paid", "advance", nil, nil, nil, nil, now, now).
			AddRow(int64(1), int64(7), date, 1, 1200, 1200, 0, "fully_paid", "full", "pi_9", nil, nil, nil, now, now))

	mock.ExpectQuery(`FROM booking_slots WHERE booking_id IN \(\$1,\$2\)`).
		WithArgs(int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "start_hour", "end_hour", "time_range_label", "price"}).
			AddRow(int64(10), int64(1), 20, 21, "8:00 PM - 9:00 PM", 1200).
			AddRow(int64(11), int64(2), 7, 8, "7:00 AM - 8:00 AM", 800))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{
		UserID:   &userID,
		Statuses: domain.UpcomingStatuses,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, []int{7}, bookings[0].Hours())
	assert.Equal(t, []int{20}, bookings[1].Hours())
	require.NotNil(t, bookings[1].PaymentReferenceID)
	assert.Equal(t, "pi_9", *bookings[1].PaymentReferenceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs("cancelled", int64(3), "advance_paid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 3, domain.StatusAdvancePaid, domain.StatusCancelled)
	assert.NoError(t, err)

	mock.ExpectExec(`UPDATE bookings SET status`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), 3, domain.StatusAdvancePaid, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkFullyPaid(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, advance_paid = total_price, balance_due = \$2, updated_at = NOW\(\) WHERE id = \$3 AND status = \$4`).
		WithArgs("fully_paid", 0, int64(9), "advance_paid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFullyPaid(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CompletePast(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE booking_date < \$2 AND status IN \(\$3,\$4\)`).
		WithArgs("completed", "2025-03-10", "advance_paid", "fully_paid").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.CompletePast(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
