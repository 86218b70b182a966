package domain

import (
	"time"

	"github.com/google/uuid"
)

// BalanceField names one adjustable balance column.
type BalanceField string

const (
	BalanceTokens BalanceField = "tokens"
	BalanceBR15   BalanceField = "br15_balance"
	BalanceBR30   BalanceField = "br30_balance"
	BalanceDP20   BalanceField = "dp20_balance"
)

// Valid reports whether f is a known balance column.
func (f BalanceField) Valid() bool {
	switch f {
	case BalanceTokens, BalanceBR15, BalanceBR30, BalanceDP20:
		return true
	}
	return false
}

type UserBalance struct {
	UserID          uuid.UUID
	Tokens          int
	TokenValidUntil *time.Time
	BR15Balance     int
	BR30Balance     int
	DP20Balance     int
	DP20Expiry      *time.Time
	IsAdmin         bool
	UpdatedAt       time.Time
}

// Get returns the amount held in field.
func (u *UserBalance) Get(field BalanceField) int {
	switch field {
	case BalanceTokens:
		return u.Tokens
	case BalanceBR15:
		return u.BR15Balance
	case BalanceBR30:
		return u.BR30Balance
	case BalanceDP20:
		return u.DP20Balance
	}
	return 0
}

// Set overwrites the amount held in field. Used by in-memory stores only.
func (u *UserBalance) Set(field BalanceField, v int) {
	switch field {
	case BalanceTokens:
		u.Tokens = v
	case BalanceBR15:
		u.BR15Balance = v
	case BalanceBR30:
		u.BR30Balance = v
	case BalanceDP20:
		u.DP20Balance = v
	}
}

// ExpiredAt reports whether field cannot be consumed at now.
func (u *UserBalance) ExpiredAt(field BalanceField, now time.Time) bool {
	switch field {
	case BalanceTokens:
		return u.TokenValidUntil != nil && !now.Before(*u.TokenValidUntil)
	case BalanceDP20:
		return u.DP20Expiry != nil && !now.Before(*u.DP20Expiry)
	}
	return false
}
