// Package simpletxmanager is the transaction manager for a plain *sql.DB, used when metrics are off.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Oso5408/ofcoz-booking/pkg/dbmetrics"
	"github.com/Oso5408/ofcoz-booking/pkg/txmanager"
)

type TransactionManager struct {
	db *sql.DB
}

func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", txmanager.ErrBeginTx, err)
	}

	return txmanager.Run(ctx, &dbmetrics.SqlTxWrapper{Tx: tx}, fn)
}
