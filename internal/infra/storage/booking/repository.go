package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/dbmetrics"
	"github.com/Oso5408/ofcoz-booking/pkg/psqlbuilder"
	"github.com/Oso5408/ofcoz-booking/pkg/txmanager"
)

const (
	codeExclusionViolation = "23P01"
	codeUniqueViolation    = "23505"
)

var columns = []string{
	"id",
	"room_id",
	"user_id",
	"start_time",
	"end_time",
	"status",
	"payment_method",
	"balance_source",
	"payment_status",
	"total_cost",
	"equipment",
	"receipt_url",
	"notes",
	"cancelled_at",
	"cancellation_reason",
	"cancelled_by",
	"cancellation_fee",
	"hours_before_start",
	"rescheduled_to",
	"created_at",
	"updated_at",
}

// Repository is the Postgres BookingStore.
type Repository struct {
	db DBExecutor
}

var _ domain.BookingStore = (*Repository)(nil)

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. When the id is zero a new one is generated.
// An overlap rejected by the bookings_no_overlap constraint comes back as ErrOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	var balanceSource *string
	if booking.BalanceSource != "" {
		s := string(booking.BalanceSource)
		balanceSource = &s
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"room_id",
			"user_id",
			"start_time",
			"end_time",
			"status",
			"payment_method",
			"balance_source",
			"payment_status",
			"total_cost",
			"equipment",
			"receipt_url",
			"notes",
		).
		Values(
			booking.ID,
			booking.RoomID,
			booking.UserID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.PaymentMethod,
			balanceSource,
			booking.PaymentStatus,
			booking.TotalCost,
			booking.Equipment,
			booking.ReceiptURL,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, fmt.Errorf("%w: Create - room_id=%d: %v", ErrOverlap, booking.RoomID, err)
		}
		return nil, storeError(ErrExecQuery, "Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID loads one booking. Inside a transaction the row is locked FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
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
		return nil, storeError(ErrScanRow, "GetByID - scan booking", err)
	}

	return booking, nil
}

// GetByDateRange returns bookings whose interval intersects [from,to), ordered by start.
//
// Inside a transaction with a room filter the matching rows are locked, which serializes
// concurrent creates for the same room and day.
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from})

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ExcludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeBookingID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.RoomID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(ErrExecQuery, "GetByDateRange - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// HasOverlap reports whether a blocking booking of roomID intersects [start,end).
func (r *Repository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inner := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)}).
		Where(squirrel.Expr("tstzrange(start_time, end_time, '[)') && tstzrange(?, ?, '[)')", start, end))

	if excludeID != nil {
		inner = inner.Where(squirrel.NotEq{"id": *excludeID})
	}

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	err = executor.QueryRowContext(ctx, "SELECT EXISTS ("+innerSQL+")", args...).Scan(&exists)
	if err != nil {
		return false, storeError(ErrExecQuery, "HasOverlap - execute query", err)
	}

	return exists, nil
}

// UpdateStatus writes a status change together with its fields. The update only applies
// while the current status is one of from; otherwise domain.ErrStatusTransition is returned.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.BookingStatus, update domain.StatusUpdate) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", update.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if len(from) > 0 {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"status": statusStrings(from)})
	}
	if update.PaymentStatus != nil {
		updateBuilder = updateBuilder.Set("payment_status", *update.PaymentStatus)
	}
	if update.ReceiptURL != nil {
		updateBuilder = updateBuilder.Set("receipt_url", *update.ReceiptURL)
	}
	if update.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *update.CancelledAt)
	}
	if update.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *update.CancellationReason)
	}
	if update.CancelledBy != nil {
		updateBuilder = updateBuilder.Set("cancelled_by", *update.CancelledBy)
	}
	if update.CancellationFee != nil {
		updateBuilder = updateBuilder.Set("cancellation_fee", *update.CancellationFee)
	}
	if update.HoursBeforeStart != nil {
		updateBuilder = updateBuilder.Set("hours_before_start", *update.HoursBeforeStart)
	}
	if update.RescheduledTo != nil {
		updateBuilder = updateBuilder.Set("rescheduled_to", *update.RescheduledTo)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Either the row is missing or its status moved on.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: UpdateStatus - booking_id=%s", domain.ErrStatusTransition, id)
	}
	if err != nil {
		if isOverlapViolation(err) {
			return nil, fmt.Errorf("%w: UpdateStatus - booking_id=%s: %v", ErrOverlap, id, err)
		}
		return nil, storeError(ErrExecQuery, "UpdateStatus - execute update", err)
	}

	return booking, nil
}

// ListByUser returns a user's bookings, newest first, optionally filtered by status.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(ErrExecQuery, "ListByUser - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListUserCancellations returns the user's own cancellations with cancelled_at in [from,to).
func (r *Repository) ListUserCancellations(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{
			"user_id":      userID,
			"status":       domain.StatusCancelled,
			"cancelled_by": domain.CancelledByUser,
		}).
		Where(squirrel.GtOrEq{"cancelled_at": from}).
		Where(squirrel.Lt{"cancelled_at": to}).
		OrderBy("cancelled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUserCancellations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(ErrExecQuery, "ListUserCancellations - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		balanceSource        sql.NullString
		createdAt, updatedAt sql.NullTime
		rescheduledTo        uuid.NullUUID
	)

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.UserID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.PaymentMethod,
		&balanceSource,
		&booking.PaymentStatus,
		&booking.TotalCost,
		&booking.Equipment,
		&booking.ReceiptURL,
		&booking.Notes,
		&booking.CancelledAt,
		&booking.CancellationReason,
		&booking.CancelledBy,
		&booking.CancellationFee,
		&booking.HoursBeforeStart,
		&rescheduledTo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if balanceSource.Valid {
		booking.BalanceSource = domain.BalanceField(balanceSource.String)
	}
	if rescheduledTo.Valid {
		id := rescheduledTo.UUID
		booking.RescheduledTo = &id
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, storeError(ErrScanRow, "scanBookings - scan row", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError(ErrScanRow, "scanBookings - rows error", err)
	}

	return bookings, nil
}

func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeExclusionViolation || pqErr.Code == codeUniqueViolation
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// storeError wraps a failed statement. SQLSTATE 40001 is reported as
// domain.ErrSerializationConflict so callers can tell it from an outage.
func storeError(kind error, op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrSerializationConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", kind, op, err)
}
