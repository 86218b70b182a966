// Package policy decides whether a user cancellation is free or costs one unit.
//
// Each user gets MonthlyFreeCancellations free cancellations per calendar month in the
// venue timezone, at most MonthlyLateFreeCancellations of them made under 48h before
// start. Counts are recomputed from booking history on every call.
package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Service struct {
	repo         CancellationRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo CancellationRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:         repo,
		location:     location,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetUserMonthlyCancellations returns the user's cancellation counts for the current month.
func (s *Service) GetUserMonthlyCancellations(ctx context.Context, userID uuid.UUID) (domain.CancellationStats, error) {
	from, to := domain.MonthBounds(s.timeProvider.Now(), s.location)

	cancellations, err := s.repo.ListUserCancellations(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("GetUserMonthlyCancellations: user=%s: %v", userID, err)
		return domain.CancellationStats{}, fmt.Errorf("%w: GetUserMonthlyCancellations - repository error: %v", ErrHistoryUnavailable, err)
	}

	return Summarize(from, cancellations), nil
}

// ShouldDeductToken evaluates a cancellation made hoursBefore the booking starts.
// hoursBefore may be negative for a booking already in progress.
func (s *Service) ShouldDeductToken(ctx context.Context, userID uuid.UUID, hoursBefore float64) (domain.PolicyDecision, error) {
	stats, err := s.GetUserMonthlyCancellations(ctx, userID)
	if err != nil {
		return domain.PolicyDecision{}, err
	}

	decision := Decide(stats, hoursBefore)
	s.logger.Info("ShouldDeductToken: user=%s, hours=%.2f, freeUsed=%d, lateUsed=%d, deduct=%t, reason=%s",
		userID, hoursBefore, stats.FreeUsed, stats.FreeUsedLate, decision.ShouldDeduct, decision.Reason)

	return decision, nil
}
