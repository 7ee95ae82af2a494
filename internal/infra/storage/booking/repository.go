package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"booking_date",
	"slot_count",
	"total_price",
	"advance_paid",
	"balance_due",
	"status",
	"payment_mode",
	"payment_reference_id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"created_at",
	"updated_at",
}

var slotColumns = []string{
	"id",
	"booking_id",
	"start_hour",
	"end_hour",
	"time_range_label",
	"price",
}

// Repository репозиторий для работы с бронированиями и их слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заголовок бронирования и его слоты.
// Должен вызываться внутри транзакции, иначе при ошибке вставки слотов останется заголовок без строк.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"booking_date",
			"slot_count",
			"total_price",
			"advance_paid",
			"balance_due",
			"status",
			"payment_mode",
			"payment_reference_id",
			"customer_name",
			"customer_phone",
			"customer_email",
		).
		Values(
			booking.UserID,
			booking.Date,
			booking.SlotCount,
			booking.TotalPrice,
			booking.AdvancePaid,
			booking.BalanceDue,
			booking.Status,
			booking.PaymentMode,
			booking.PaymentReferenceID,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.CustomerEmail,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if isUniqueViolation(err, paymentReferenceIndex) {
		return nil, ErrDuplicatePaymentReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if len(booking.Slots) == 0 {
		return booking, nil
	}

	insertSlots := psqlbuilder.Insert("booking_slots").
		Columns("booking_id", "booking_date", "start_hour", "end_hour", "time_range_label", "price")
	for _, s := range booking.Slots {
		insertSlots = insertSlots.Values(booking.ID, booking.Date, s.StartHour, s.EndHour, s.TimeRangeLabel, s.Price)
	}

	query, args, err = insertSlots.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build slots insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute slots insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if i >= len(booking.Slots) {
			break
		}
		if err := rows.Scan(&booking.Slots[i].ID); err != nil {
			return nil, fmt.Errorf("%w: Create - scan slot id: %v", ErrScanRow, err)
		}
		booking.Slots[i].BookingID = booking.ID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Create - slots rows error: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetBookedHours возвращает часы, занятые неотмененными бронированиями на дату.
// Внутри транзакции блокирует найденные строки (FOR UPDATE).
func (r *Repository) GetBookedHours(ctx context.Context, date string) ([]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("bs.start_hour").
		From("booking_slots bs").
		Join("bookings b ON b.id = bs.booking_id").
		Where(squirrel.Eq{"bs.booking_date": date}).
		Where(squirrel.NotEq{"b.status": string(domain.StatusCancelled)}).
		OrderBy("bs.start_hour ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]int, 0)
	for rows.Next() {
		var hour int
		if err := rows.Scan(&hour); err != nil {
			return nil, fmt.Errorf("%w: GetBookedHours - scan hour: %v", ErrScanRow, err)
		}
		hours = append(hours, hour)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// IsPaymentReferenceUsed проверяет, привязан ли платёж к какому-либо бронированию
func (r *Repository) IsPaymentReferenceUsed(ctx context.Context, referenceID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"payment_reference_id": referenceID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsPaymentReferenceUsed - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsPaymentReferenceUsed - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetByID получает бронирование по ID вместе со слотами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.attachSlots(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// List получает бронирования по фильтру
// Сортировка: по дате (новые сначала), затем по id
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("booking_date DESC", "id DESC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}

	bookings, err := scanBookings(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if err := r.attachSlots(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus меняет статус, только если текущий статус равен from
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "UpdateStatus", query, args)
}

// MarkFullyPaid закрывает остаток: advance_paid = total_price, balance_due = 0
func (r *Repository) MarkFullyPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusFullyPaid).
		Set("advance_paid", squirrel.Expr("total_price")).
		Set("balance_due", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusAdvancePaid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFullyPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "MarkFullyPaid", query, args)
}

// CompletePast переводит в completed предстоящие бронирования с датой раньше before
func (r *Repository) CompletePast(ctx context.Context, before string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	upcoming := make([]string, len(domain.UpcomingStatuses))
	for i, s := range domain.UpcomingStatuses {
		upcoming[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Lt{"booking_date": before}).
		Where(squirrel.Eq{"status": upcoming}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CompletePast - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompletePast - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompletePast - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func (r *Repository) execSingle(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// attachSlots подгружает строки слотов одним запросом
func (r *Repository) attachSlots(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
		ids = append(ids, b.ID)
		b.Slots = make([]domain.BookingSlot, 0, b.SlotCount)
	}

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("booking_slots").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id", "CASE WHEN start_hour = 0 THEN 24 ELSE start_hour END").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.BookingSlot
		if err := rows.Scan(&s.ID, &s.BookingID, &s.StartHour, &s.EndHour, &s.TimeRangeLabel, &s.Price); err != nil {
			return fmt.Errorf("%w: attachSlots - scan slot: %v", ErrScanRow, err)
		}
		if b, ok := byID[s.BookingID]; ok {
			b.Slots = append(b.Slots, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachSlots - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		bookingDate          time.Time
		status, mode         string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&bookingDate,
		&booking.SlotCount,
		&booking.TotalPrice,
		&booking.AdvancePaid,
		&booking.BalanceDue,
		&status,
		&mode,
		&booking.PaymentReferenceID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.CustomerEmail,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = bookingDate.Format(domain.DateFormat)
	booking.Status = domain.BookingStatus(status)
	booking.PaymentMode = domain.PaymentMode(mode)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

const paymentReferenceIndex = "uq_bookings_payment_reference_id"

// isUniqueViolation сообщает, что вставка упала на уникальном индексе index (код 23505)
func isUniqueViolation(err error, index string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == index
}
