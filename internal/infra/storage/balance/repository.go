package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/pkg/dbmetrics"
	"github.com/Oso5408/ofcoz-booking/pkg/psqlbuilder"
	"github.com/Oso5408/ofcoz-booking/pkg/txmanager"
)

type DBExecutor = dbmetrics.DBExecutor

var columns = []string{
	"user_id",
	"tokens",
	"token_valid_until",
	"br15_balance",
	"br30_balance",
	"dp20_balance",
	"dp20_expiry",
	"is_admin",
	"updated_at",
}

// Repository is the Postgres UserBalanceStore. Every mutation is one conditional
// UPDATE so concurrent sessions of the same user cannot lose updates.
type Repository struct {
	db DBExecutor
}

var _ domain.UserBalanceStore = (*Repository)(nil)

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUser(ctx context.Context, userID uuid.UUID) (*domain.UserBalance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("user_balances").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUser - build select query: %v", ErrBuildQuery, err)
	}

	balance, err := scanBalance(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeError(ErrScanRow, "GetUser - scan balance", err)
	}

	return balance, nil
}

// AdjustBalance adds delta to field. Debits only apply while the result stays
// non-negative and the balance has not expired at now.
func (r *Repository) AdjustBalance(ctx context.Context, userID uuid.UUID, field domain.BalanceField, delta int, now time.Time) (*domain.UserBalance, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	column := string(field)

	updateBuilder := psqlbuilder.Update("user_balances").
		Set(column, squirrel.Expr(column+" + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Expr(column+" + ? >= 0", delta))

	if expiry := expiryColumn(field); delta < 0 && expiry != "" {
		updateBuilder = updateBuilder.Where(squirrel.Or{
			squirrel.Eq{expiry: nil},
			squirrel.Gt{expiry: now},
		})
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + joined()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AdjustBalance - build update query: %v", ErrBuildQuery, err)
	}

	balance, err := scanBalance(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainRejectedDebit(ctx, userID, field, now)
	}
	if err != nil {
		return nil, storeError(ErrExecQuery, "AdjustBalance - execute update", err)
	}

	return balance, nil
}

// AssignPackage credits amount to field, creating the balance row when missing.
// validUntil, when set, replaces the field's expiry column.
func (r *Repository) AssignPackage(ctx context.Context, userID uuid.UUID, field domain.BalanceField, amount int, validUntil *time.Time) (*domain.UserBalance, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	column := string(field)

	insertColumns := []string{"user_id", column}
	values := []interface{}{userID, amount}
	conflict := fmt.Sprintf("ON CONFLICT (user_id) DO UPDATE SET %s = user_balances.%s + EXCLUDED.%s, updated_at = NOW()",
		column, column, column)

	if expiry := expiryColumn(field); expiry != "" && validUntil != nil {
		insertColumns = append(insertColumns, expiry)
		values = append(values, *validUntil)
		conflict += fmt.Sprintf(", %s = EXCLUDED.%s", expiry, expiry)
	}

	query, args, err := psqlbuilder.Insert("user_balances").
		Columns(insertColumns...).
		Values(values...).
		Suffix(conflict + " RETURNING " + joined()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AssignPackage - build insert query: %v", ErrBuildQuery, err)
	}

	balance, err := scanBalance(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, storeError(ErrExecQuery, "AssignPackage - execute upsert", err)
	}

	return balance, nil
}

func (r *Repository) explainRejectedDebit(ctx context.Context, userID uuid.UUID, field domain.BalanceField, now time.Time) error {
	current, err := r.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if current.ExpiredAt(field, now) {
		return fmt.Errorf("%w: AdjustBalance - %s expired", ErrBalanceExpired, field)
	}
	return fmt.Errorf("%w: AdjustBalance - %s=%d", ErrBalanceTooLow, field, current.Get(field))
}

func expiryColumn(field domain.BalanceField) string {
	switch field {
	case domain.BalanceTokens:
		return "token_valid_until"
	case domain.BalanceDP20:
		return "dp20_expiry"
	}
	return ""
}

func joined() string {
	return strings.Join(columns, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBalance(row rowScanner) (*domain.UserBalance, error) {
	var (
		balance   domain.UserBalance
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&balance.UserID,
		&balance.Tokens,
		&balance.TokenValidUntil,
		&balance.BR15Balance,
		&balance.BR30Balance,
		&balance.DP20Balance,
		&balance.DP20Expiry,
		&balance.IsAdmin,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	balance.UpdatedAt = updatedAt.Time
	return &balance, nil
}

// storeError wraps a failed statement. SQLSTATE 40001 is reported as
// domain.ErrSerializationConflict so callers can tell it from an outage.
func storeError(kind error, op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrSerializationConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", kind, op, err)
}
