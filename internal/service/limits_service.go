package service

import (
	"context"
	"fmt"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LimitsEngineImpl implements ports.LimitsEngine.
type LimitsEngineImpl struct {
	limitRepo ports.LimitRepository
	history   ports.TransactionRepository
	cache     ports.LimitCache
	cacheTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewLimitsEngine creates a new LimitsEngineImpl.
func NewLimitsEngine(
	limitRepo ports.LimitRepository,
	history ports.TransactionRepository,
	cache ports.LimitCache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *LimitsEngineImpl {
	return &LimitsEngineImpl{
		limitRepo: limitRepo,
		history:   history,
		cache:     cache,
		cacheTTL:  cacheTTL,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate checks every applicable limit, with no early exit, so each match
// gets its own alert. Statistics are always read fresh. A failure on one
// limit skips that limit; failing to load the limit set fails open.
func (s *LimitsEngineImpl) Evaluate(ctx context.Context, c *domain.LimitCandidate) *domain.LimitDecision {
	limits, err := s.activeLimits(ctx, c)
	if err != nil {
		logger.Alert(s.log, logger.AlertLimitsFailOpen).
			Err(err).
			Str("transaction_id", c.TransactionUUID.String()).
			Str("merchant_id", c.MerchantID.String()).
			Msg("limits engine unavailable, transaction not limit-checked")
		return &domain.LimitDecision{Checked: false}
	}

	now := s.now()
	decision := &domain.LimitDecision{Checked: true}
	for i := range limits {
		l := &limits[i]
		if !l.Applies(c) {
			continue
		}
		stats := domain.LimitStatistics{SuccessAmount: decimal.Zero}
		if l.NeedsHistory() {
			st, err := s.history.WindowStats(ctx, statsFilter(l, now))
			if err != nil {
				s.log.Error().Err(err).
					Str("limit_id", l.ID.String()).
					Str("transaction_id", c.TransactionUUID.String()).
					Msg("limit statistics unavailable, limit skipped")
				continue
			}
			stats = *st
		}
		stats.WindowStart = l.WindowStart(now)
		stats.CandidateAmount = c.Amount

		reasons := l.Breaches(c, stats)
		if len(reasons) == 0 {
			continue
		}
		alert := domain.NewLimitAlert(l, c.TransactionUUID, stats, reasons, now)
		decision.Alerts = append(decision.Alerts, alert)
		if alert.Declined {
			decision.Declined = true
		}
		s.log.Warn().
			Str("limit_id", l.ID.String()).
			Str("scope", string(l.Scope)).
			Str("transaction_id", c.TransactionUUID.String()).
			Str("severity", string(alert.Severity)).
			Bool("declined", alert.Declined).
			Int64("success_count", stats.SuccessCount).
			Int64("failed_count", stats.FailedCount).
			Str("success_amount", stats.SuccessAmount.String()).
			Strs("reasons", reasons).
			Msg("limit matched")
	}

	s.log.Info().
		Str("transaction_id", c.TransactionUUID.String()).
		Int("limits", len(limits)).
		Int("alerts", len(decision.Alerts)).
		Bool("declined", decision.Declined).
		Msg("limits evaluated")
	return decision
}

func (s *LimitsEngineImpl) activeLimits(ctx context.Context, c *domain.LimitCandidate) ([]domain.Limit, error) {
	version, err := s.cache.Version(ctx)
	if err != nil {
		return nil, err
	}
	merchant, err := s.scopeLimits(ctx, version, domain.LimitScopeMerchant, c.MerchantID)
	if err != nil {
		return nil, err
	}
	if c.CustomerID == nil {
		return merchant, nil
	}
	customer, err := s.scopeLimits(ctx, version, domain.LimitScopeCustomer, *c.CustomerID)
	if err != nil {
		return nil, err
	}
	return append(customer, merchant...), nil
}

func (s *LimitsEngineImpl) scopeLimits(ctx context.Context, version int64, scope domain.LimitScope, owner uuid.UUID) ([]domain.Limit, error) {
	limits, ok, err := s.cache.Get(ctx, version, scope, owner)
	if err != nil {
		return nil, err
	}
	if ok {
		return limits, nil
	}
	limits, err = s.limitRepo.ListActive(ctx, scope, owner)
	if err != nil {
		return nil, fmt.Errorf("load %s limits: %w", scope, err)
	}
	if err := s.cache.Set(ctx, version, scope, owner, limits, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("scope", string(scope)).Msg("failed to cache limits")
	}
	return limits, nil
}

// statsFilter scopes history to the limit owner and filters. Earlier limit
// declines are excluded so a decline never feeds the failure counters.
func statsFilter(l *domain.Limit, now time.Time) ports.StatsFilter {
	f := ports.StatsFilter{
		Type:               l.TransactionType,
		Currency:           l.Currency,
		Since:              l.WindowStart(now),
		ExcludeDeclineCode: domain.DeclineCodeLimitExceeded,
	}
	owner := l.OwnerID
	if l.Scope == domain.LimitScopeCustomer {
		f.CustomerID = &owner
	} else {
		f.MerchantID = &owner
	}
	return f
}
