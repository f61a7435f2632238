package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DispatcherSettings tunes callback replay protection and the scheduled jobs.
type DispatcherSettings struct {
	ReplayTTL      time.Duration
	ReconcileAfter time.Duration
	ReconcileBatch int
	ExpireBatch    int
	Workers        int
}

// DispatcherServiceImpl implements ports.CallbackDispatcher. It routes
// provider callbacks to their controller and drives reconciliation.
type DispatcherServiceImpl struct {
	registry     ports.ControllerRegistry
	stateMachine ports.TransactionStateMachine
	trxRepo      ports.TransactionRepository
	replay       ports.CallbackReplayGuard
	settings     DispatcherSettings
	log          zerolog.Logger
}

// NewDispatcherService creates a new DispatcherServiceImpl.
func NewDispatcherService(
	registry ports.ControllerRegistry,
	stateMachine ports.TransactionStateMachine,
	trxRepo ports.TransactionRepository,
	replay ports.CallbackReplayGuard,
	settings DispatcherSettings,
	log zerolog.Logger,
) *DispatcherServiceImpl {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.ReconcileBatch < 1 {
		settings.ReconcileBatch = 100
	}
	if settings.ExpireBatch < 1 {
		settings.ExpireBatch = 100
	}
	return &DispatcherServiceImpl{
		registry:     registry,
		stateMachine: stateMachine,
		trxRepo:      trxRepo,
		replay:       replay,
		settings:     settings,
		log:          log,
	}
}

// HandleCallback validates and applies one provider callback. Nothing is
// read or written before the signature check passes.
func (s *DispatcherServiceImpl) HandleCallback(ctx context.Context, raw *domain.RawCallback) (*domain.CallbackResponse, error) {
	ctrl, ok := s.registry.Get(raw.Provider)
	if !ok {
		return nil, apperror.ErrUnknownProvider(raw.Provider)
	}
	log := s.log.With().
		Str("provider", raw.Provider).
		Str("remote_addr", raw.RemoteAddr).
		Int("payload_bytes", len(raw.Body)).
		Logger()

	if !ctrl.ValidateCallbackSignature(ctx, raw) {
		log.Warn().Msg("callback signature rejected")
		return nil, apperror.ErrInvalidSignature()
	}

	fingerprint := raw.Fingerprint()
	seen, err := s.replay.Seen(ctx, raw.Provider, fingerprint)
	if err != nil {
		log.Warn().Err(err).Msg("replay guard unavailable, processing callback")
	}
	if seen {
		log.Info().Str("fingerprint", fingerprint).Msg("duplicate callback acknowledged")
		return ctrl.BuildCallbackResponse(ctx, raw), nil
	}

	result, err := ctrl.ParseCallback(ctx, raw)
	if err != nil {
		log.Warn().Err(err).Bytes("payload", raw.Body).Msg("callback could not be parsed")
		return nil, apperror.Validation(fmt.Sprintf("malformed %s callback", raw.Provider))
	}
	if result.Response != nil {
		return result.Response, nil
	}
	if result.Status == nil {
		return nil, apperror.Validation(fmt.Sprintf("%s callback carried no status", raw.Provider))
	}

	trx, err := s.resolve(ctx, raw.Provider, result.Status)
	if err != nil {
		return nil, err
	}
	updated, err := s.stateMachine.ApplyRemoteStatus(ctx, trx.ID, result.Status)
	if err != nil {
		log.Warn().Err(err).
			Str("transaction_id", trx.UUID.String()).
			Str("remote_status", string(result.Status.Status)).
			Msg("callback not applied")
		return nil, err
	}

	if err := s.replay.Remember(ctx, raw.Provider, fingerprint, s.settings.ReplayTTL); err != nil {
		log.Warn().Err(err).Msg("failed to remember callback")
	}
	log.Info().
		Str("transaction_id", updated.UUID.String()).
		Str("remote_status", string(result.Status.Status)).
		Str("status", string(updated.Status)).
		Bytes("payload", raw.Body).
		Msg("callback applied")
	return ctrl.BuildCallbackResponse(ctx, raw), nil
}

// resolve finds the transaction a callback refers to, by our id first and
// the provider id second. A transaction routed to another provider is
// treated as unknown.
func (s *DispatcherServiceImpl) resolve(ctx context.Context, provider string, st *domain.RemoteStatus) (*domain.PaymentTransaction, error) {
	var (
		trx *domain.PaymentTransaction
		err error
	)
	switch {
	case st.TransactionUUID != uuid.Nil:
		trx, err = s.trxRepo.GetByUUID(ctx, st.TransactionUUID)
	case st.ProviderID != "":
		trx, err = s.trxRepo.GetByProviderID(ctx, provider, st.ProviderID)
	default:
		return nil, apperror.Validation("callback does not identify a transaction")
	}
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve callback transaction: %w", err))
	}
	if trx == nil || trx.Provider != provider {
		return nil, apperror.ErrNotFound("transaction")
	}
	return trx, nil
}

// Reconcile runs one status check for the transaction.
func (s *DispatcherServiceImpl) Reconcile(ctx context.Context, trxUUID uuid.UUID) (*domain.PaymentTransaction, error) {
	trx, err := s.stateMachine.GetByUUID(ctx, trxUUID)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, trx)
}

func (s *DispatcherServiceImpl) reconcile(ctx context.Context, trx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	ctrl, ok := s.registry.Get(trx.Provider)
	if !ok {
		return nil, apperror.ErrUnknownProvider(trx.Provider)
	}
	return s.stateMachine.Reconcile(ctx, trx.ID, ctrl.CheckStatus)
}

// ReconcileDue checks pending transactions that have been idle for
// ReconcileAfter and returns how many reached a final status.
func (s *DispatcherServiceImpl) ReconcileDue(ctx context.Context, now time.Time) (int, error) {
	idleSince := now.Add(-s.settings.ReconcileAfter)
	due, err := s.trxRepo.ListPending(ctx, ports.PendingListParams{IdleSince: &idleSince, Limit: s.settings.ReconcileBatch})
	if err != nil {
		return 0, fmt.Errorf("list transactions due for reconciliation: %w", err)
	}
	return s.forEach(ctx, due, "reconcile", func(ctx context.Context, trx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
		return s.reconcile(ctx, trx)
	})
}

// FailExpired fails pending transactions past their deadline and returns
// how many were failed.
func (s *DispatcherServiceImpl) FailExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.trxRepo.ListPending(ctx, ports.PendingListParams{ExpiredAt: &now, Limit: s.settings.ExpireBatch})
	if err != nil {
		return 0, fmt.Errorf("list expired transactions: %w", err)
	}
	return s.forEach(ctx, expired, "fail_expired", func(ctx context.Context, trx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
		return s.stateMachine.FailByTimeout(ctx, trx.ID, domain.DeclineCodePendingExpired)
	})
}

// forEach runs fn over trxs on a bounded pool. Per-transaction failures are
// logged and do not stop the batch.
func (s *DispatcherServiceImpl) forEach(ctx context.Context, trxs []domain.PaymentTransaction, job string, fn func(context.Context, *domain.PaymentTransaction) (*domain.PaymentTransaction, error)) (int, error) {
	var (
		g        errgroup.Group
		finished atomic.Int64
	)
	g.SetLimit(s.settings.Workers)
	for i := range trxs {
		trx := &trxs[i]
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			updated, err := fn(ctx, trx)
			if err != nil {
				s.log.Warn().Err(err).
					Str("job", job).
					Str("transaction_id", trx.UUID.String()).
					Str("provider", trx.Provider).
					Msg("scheduled transaction job failed")
				return nil
			}
			if updated.IsTerminal() {
				finished.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	n := int(finished.Load())
	if len(trxs) > 0 {
		s.log.Info().Str("job", job).Int("candidates", len(trxs)).Int("finished", n).Msg("scheduled job completed")
	}
	return n, ctx.Err()
}
