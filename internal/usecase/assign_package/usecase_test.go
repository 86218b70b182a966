package assign_package

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
	"github.com/Oso5408/ofcoz-booking/internal/infra/storage/memory"
	"github.com/Oso5408/ofcoz-booking/pkg/logger"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

func TestExecute(t *testing.T) {
	tests := []struct {
		name      string
		validDays int
		pkg       domain.BalanceField
		amount    int
		check     func(t *testing.T, b *domain.UserBalance)
	}{
		{
			name: "dp20 sets 90 day expiry", pkg: domain.BalanceDP20, amount: 20,
			check: func(t *testing.T, b *domain.UserBalance) {
				assert.Equal(t, 20, b.DP20Balance)
				require.NotNil(t, b.DP20Expiry)
				assert.Equal(t, now.AddDate(0, 0, 90), *b.DP20Expiry)
			},
		},
		{
			name: "tokens without validity", pkg: domain.BalanceTokens, amount: 10,
			check: func(t *testing.T, b *domain.UserBalance) {
				assert.Equal(t, 10, b.Tokens)
				assert.Nil(t, b.TokenValidUntil)
			},
		},
		{
			name: "tokens with validity", validDays: 365, pkg: domain.BalanceTokens, amount: 10,
			check: func(t *testing.T, b *domain.UserBalance) {
				require.NotNil(t, b.TokenValidUntil)
				assert.Equal(t, now.AddDate(0, 0, 365), *b.TokenValidUntil)
			},
		},
		{
			name: "br30", pkg: domain.BalanceBR30, amount: 30,
			check: func(t *testing.T, b *domain.UserBalance) {
				assert.Equal(t, 30, b.BR30Balance)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			uc := NewUseCase(store, tt.validDays, logger.NewWriter(io.Discard, "error")).WithTimeProvider(fixedTime{})

			resp, err := uc.Execute(context.Background(), &Request{UserID: uuid.New(), AdminID: uuid.New(), Package: tt.pkg, Amount: tt.amount})
			require.NoError(t, err)
			tt.check(t, resp.Balance)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(memory.NewStore(), 0, logger.NewWriter(io.Discard, "error"))

	for _, req := range []*Request{
		{UserID: uuid.New(), Package: "gold", Amount: 1},
		{UserID: uuid.New(), Package: domain.BalanceTokens, Amount: 0},
		{Package: domain.BalanceTokens, Amount: 1},
	} {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
