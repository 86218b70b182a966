package assign_package

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

// UseCase credits token or package balances
type UseCase struct {
	balanceRepo    BalanceRepository
	tokenValidDays int
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase builds the use case. tokenValidDays > 0 extends token validity on every
// token credit; zero leaves token_valid_until unchanged.
func NewUseCase(balanceRepo BalanceRepository, tokenValidDays int, logger Logger) *UseCase {
	return &UseCase{
		balanceRepo:    balanceRepo,
		tokenValidDays: tokenValidDays,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignPackage: admin=%s, user=%s, package=%s, amount=%d", req.AdminID, req.UserID, req.Package, req.Amount)

	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if !req.Package.Valid() {
		return nil, fmt.Errorf("%w: unknown package %q", ErrInvalidInput, req.Package)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// Expiry: dp20 always, tokens only when configured
	var validUntil *time.Time
	switch {
	case req.Package == domain.BalanceDP20:
		expiry := domain.DP20Expiry(now)
		validUntil = &expiry
	case req.Package == domain.BalanceTokens && uc.tokenValidDays > 0:
		expiry := now.AddDate(0, 0, uc.tokenValidDays)
		validUntil = &expiry
	}

	balance, err := uc.balanceRepo.AssignPackage(ctx, req.UserID, req.Package, req.Amount, validUntil)
	if err != nil {
		uc.logger.Error("AssignPackage: failed for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("AssignPackage: user=%s now has %s=%d", req.UserID, req.Package, balance.Get(req.Package))
	return &Response{Balance: balance}, nil
}
