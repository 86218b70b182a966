package booking

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var hkt = time.FixedZone("HKT", 8*60*60)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func bookingRow(id uuid.UUID, status domain.BookingStatus) *sqlmock.Rows {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, hkt)
	return sqlmock.NewRows(columns).AddRow(
		id.String(), int64(1), uuid.New().String(), start, start.Add(2*time.Hour),
		string(status), "token", "tokens", "paid", int64(6), false,
		nil, nil, nil, nil, nil, nil, nil, nil, start, start,
	)
}

func newBooking() *domain.Booking {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, hkt)
	return &domain.Booking{
		RoomID:        1,
		UserID:        uuid.New(),
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		Status:        domain.StatusConfirmed,
		PaymentMethod: domain.PaymentToken,
		BalanceSource: domain.BalanceTokens,
		PaymentStatus: domain.PaymentPaid,
		TotalCost:     6,
	}
}

func TestCreate_MapsDriverErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		notWant error
	}{
		{"exclusion constraint", &pq.Error{Code: "23P01"}, ErrOverlap, domain.ErrSerializationConflict},
		{"unique violation", &pq.Error{Code: "23505"}, ErrOverlap, domain.ErrSerializationConflict},
		{"serialization failure", &pq.Error{Code: "40001"}, domain.ErrSerializationConflict, ErrOverlap},
		{"connection lost", errors.New("driver: bad connection"), ErrExecQuery, domain.ErrSerializationConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), newBooking())

			assert.ErrorIs(t, err, tt.want)
			assert.NotErrorIs(t, err, tt.notWant)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate_GeneratesIDAndKeepsTimestamps(t *testing.T) {
	repo, mock := newMockRepo(t)
	stamp := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,room_id,user_id,start_time,end_time,status,payment_method,balance_source,payment_status,total_cost,equipment,receipt_url,notes) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) RETURNING created_at, updated_at")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(stamp, stamp))

	created, err := repo.Create(context.Background(), newBooking())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, stamp, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOverlap_QueriesHalfOpenRange(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, hkt)
	end := start.Add(time.Hour)
	exclude := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM bookings WHERE room_id = $1 AND status NOT IN ($2,$3) AND tstzrange(start_time, end_time, '[)') && tstzrange($4, $5, '[)') AND id <> $6)")).
		WithArgs(int64(1), string(domain.StatusCancelled), string(domain.StatusRescheduled), start, end, exclude).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlap, err := repo.HasOverlap(context.Background(), 1, start, end, &exclude)

	require.NoError(t, err)
	assert.True(t, overlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOverlap_SerializationFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, hkt)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.HasOverlap(context.Background(), 1, start, start.Add(time.Hour), nil)

	assert.ErrorIs(t, err, domain.ErrSerializationConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NoRowsUpdated(t *testing.T) {
	updateQuery := regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status IN ($3,$4,$5)")
	selectQuery := regexp.QuoteMeta("SELECT id, room_id") + ".*" + regexp.QuoteMeta("FROM bookings WHERE id = $1")
	empty := func() *sqlmock.Rows { return sqlmock.NewRows(columns) }

	t.Run("booking missing", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.New()
		mock.ExpectQuery(updateQuery).WillReturnRows(empty())
		mock.ExpectQuery(selectQuery).WithArgs(id).WillReturnRows(empty())

		_, err := repo.UpdateStatus(context.Background(), id, domain.ActiveStatuses, domain.StatusUpdate{Status: domain.StatusCancelled})

		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NotErrorIs(t, err, domain.ErrStatusTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status moved on", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.New()
		mock.ExpectQuery(updateQuery).WillReturnRows(empty())
		mock.ExpectQuery(selectQuery).WithArgs(id).WillReturnRows(bookingRow(id, domain.StatusCancelled))

		_, err := repo.UpdateStatus(context.Background(), id, domain.ActiveStatuses, domain.StatusUpdate{Status: domain.StatusCancelled})

		assert.ErrorIs(t, err, domain.ErrStatusTransition)
		assert.NotErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStatus_WritesOptionalFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	receipt := "https://cdn.example.com/receipts/r.png"
	paid := domain.PaymentPaid

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW(), payment_status = $2, receipt_url = $3 WHERE id = $4 RETURNING id,")).
		WithArgs(string(domain.StatusToBeConfirmed), string(paid), receipt, id).
		WillReturnRows(bookingRow(id, domain.StatusToBeConfirmed))

	updated, err := repo.UpdateStatus(context.Background(), id, nil, domain.StatusUpdate{
		Status:        domain.StatusToBeConfirmed,
		PaymentStatus: &paid,
		ReceiptURL:    &receipt,
	})

	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, domain.StatusToBeConfirmed, updated.Status)
	assert.Equal(t, domain.BalanceTokens, updated.BalanceSource)
	assert.Nil(t, updated.RescheduledTo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsOverlapViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"exclusion", &pq.Error{Code: "23P01"}, true},
		{"unique", &pq.Error{Code: "23505"}, true},
		{"wrapped exclusion", errors.Join(errors.New("insert"), &pq.Error{Code: "23P01"}), true},
		{"serialization", &pq.Error{Code: "40001"}, false},
		{"foreign key", &pq.Error{Code: "23503"}, false},
		{"not a driver error", driver.ErrBadConn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isOverlapViolation(tt.err))
		})
	}
}
