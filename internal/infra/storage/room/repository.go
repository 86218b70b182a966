package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/dbmetrics"
	"github.com/Oso5408/ofcoz-booking/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository reads the room catalogue.
type Repository struct {
	db DBExecutor
}

var _ domain.RoomStore = (*Repository)(nil)

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID loads a room with all of its images.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"capacity",
		"token_hourly",
		"cash_hourly",
		"cash_daily",
		"cash_monthly",
		"booking_options",
		"hidden",
	).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	images, err := r.imagesFor(ctx, []int64{room.ID})
	if err != nil {
		return nil, err
	}
	room.Images = images[room.ID]

	return room, nil
}

// List returns rooms ordered by id. Hidden rooms are skipped unless includeHidden is set.
func (r *Repository) List(ctx context.Context, includeHidden bool) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"capacity",
		"token_hourly",
		"cash_hourly",
		"cash_daily",
		"cash_monthly",
		"booking_options",
		"hidden",
	).
		From("rooms").
		OrderBy("id ASC")

	if !includeHidden {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"hidden": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
		ids = append(ids, room.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return rooms, nil
	}

	images, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		room.Images = images[room.ID]
	}

	return rooms, nil
}

func (r *Repository) imagesFor(ctx context.Context, roomIDs []int64) (map[int64][]domain.RoomImage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("room_id", "url", "position", "visible").
		From("room_images").
		Where(squirrel.Eq{"room_id": roomIDs}).
		OrderBy("room_id ASC", "position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: imagesFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: imagesFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	images := make(map[int64][]domain.RoomImage, len(roomIDs))
	for rows.Next() {
		var (
			roomID int64
			img    domain.RoomImage
		)
		if err := rows.Scan(&roomID, &img.URL, &img.Position, &img.Visible); err != nil {
			return nil, fmt.Errorf("%w: imagesFor - scan row: %v", ErrScanRow, err)
		}
		images[roomID] = append(images[roomID], img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: imagesFor - rows error: %v", ErrScanRow, err)
	}

	return images, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var (
		room    domain.Room
		options pq.StringArray
	)

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.Prices.TokenHourly,
		&room.Prices.CashHourly,
		&room.Prices.CashDaily,
		&room.Prices.CashMonthly,
		&options,
		&room.Hidden,
	)
	if err != nil {
		return nil, err
	}

	room.BookingOptions = make([]domain.PaymentMethod, 0, len(options))
	for _, o := range options {
		room.BookingOptions = append(room.BookingOptions, domain.PaymentMethod(o))
	}

	return &room, nil
}
