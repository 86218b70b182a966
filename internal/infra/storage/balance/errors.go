package balance

import (
	"errors"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

var (
	ErrUserNotFound   = domain.ErrUserNotFound
	ErrBalanceTooLow  = domain.ErrBalanceTooLow
	ErrBalanceExpired = domain.ErrBalanceExpired
	ErrInvalidField   = domain.ErrInvalidBalance

	ErrBuildQuery = errors.New("balance.repository: failed to build query")
	ErrExecQuery  = errors.New("balance.repository: failed to execute query")
	ErrScanRow    = errors.New("balance.repository: failed to scan row")
)
