package service

import (
	"context"
	"fmt"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const maxEntriesPage = 500

// LedgerServiceImpl implements ports.LedgerService. It is the only writer of
// wallet balances.
type LedgerServiceImpl struct {
	walletRepo ports.CurrencyWalletRepository
	entryRepo  ports.BalanceTransactionRepository
	transactor ports.DBTransactor
	retry      RetryPolicy
	log        zerolog.Logger
	now        func() time.Time
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.CurrencyWalletRepository,
	entryRepo ports.BalanceTransactionRepository,
	transactor ports.DBTransactor,
	retry RetryPolicy,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		transactor: transactor,
		retry:      retry,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Apply locks the wallet row inside tx, appends one journal entry and stores
// the new balances. Invariant breaches are committed and alerted, not rejected.
func (s *LedgerServiceImpl) Apply(ctx context.Context, tx pgx.Tx, req ports.LedgerRequest) (*domain.BalanceTransaction, error) {
	var (
		delta domain.BalanceDelta
		err   error
	)
	if req.Event == domain.EventCompensation {
		delta, err = domain.CompensationDelta(req.Reverses, req.Amount)
	} else {
		delta, err = domain.EventDelta(req.Event, req.Amount)
	}
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, tx, req.CurrencyWalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("currency wallet")
	}

	before := wallet.Balances
	after := before.Apply(delta)
	entry := &domain.BalanceTransaction{
		ID:                uuid.New(),
		CurrencyWalletID:  wallet.ID,
		Type:              req.Event,
		Amount:            delta.Operational,
		OperationalBefore: before.Operational,
		OperationalAfter:  after.Operational,
		FrozenBefore:      before.Frozen,
		FrozenAfter:       after.Frozen,
		PendingBefore:     before.Pending,
		PendingAfter:      after.Pending,
		Initiator:         req.Initiator,
		Actor:             req.Actor,
		TransactionID:     req.TransactionID,
		TransactionUUID:   req.TransactionUUID,
		Description:       req.Description,
		CreatedAt:         s.now(),
	}
	if req.Event == domain.EventCompensation {
		reverses := req.Reverses
		entry.Reverses = &reverses
	}

	if err := s.walletRepo.UpdateBalances(ctx, tx, wallet.ID, after); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append ledger entry: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("event", string(req.Event)).
		Str("amount", req.Amount.String()).
		Str("initiator", string(req.Initiator)).
		Str("actor", req.Actor).
		Str("operational_before", before.Operational.String()).
		Str("operational_after", after.Operational.String()).
		Str("frozen_before", before.Frozen.String()).
		Str("frozen_after", after.Frozen.String()).
		Str("pending_before", before.Pending.String()).
		Str("pending_after", after.Pending.String()).
		Msg("ledger entry applied")

	if v := after.Violations(); len(v) > 0 {
		logger.Alert(s.log, logger.AlertLedgerInvariant).
			Str("wallet_id", wallet.ID.String()).
			Str("event", string(req.Event)).
			Strs("violations", v).
			Msg("wallet balance invariant breached")
	}
	return entry, nil
}

// Adjust applies an operator MANUAL_ADJUSTMENT in its own unit of work.
func (s *LedgerServiceImpl) Adjust(ctx context.Context, req ports.AdjustmentRequest) (*domain.BalanceTransaction, error) {
	if req.Amount.IsZero() {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Actor == "" || req.Reason == "" {
		return nil, apperror.Validation("actor and reason are required for a manual adjustment")
	}

	return withLockRetry(ctx, s.retry, s.log, "ledger.adjust", func() (*domain.BalanceTransaction, error) {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		entry, err := s.Apply(ctx, dbTx, ports.LedgerRequest{
			CurrencyWalletID: req.CurrencyWalletID,
			Event:            domain.EventManualAdjustment,
			Amount:           req.Amount,
			Initiator:        domain.InitiatorAdmin,
			Actor:            req.Actor,
			Description:      req.Reason,
		})
		if err != nil {
			return nil, err
		}
		if err := dbTx.Commit(ctx); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		return entry, nil
	})
}

func (s *LedgerServiceImpl) GetWallet(ctx context.Context, id uuid.UUID) (*domain.CurrencyWallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("currency wallet")
	}
	return wallet, nil
}

// ListEntries returns the newest entries first.
func (s *LedgerServiceImpl) ListEntries(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.BalanceTransaction, error) {
	if limit <= 0 || limit > maxEntriesPage {
		limit = maxEntriesPage
	}
	entries, err := s.entryRepo.ListByWallet(ctx, walletID, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list entries: %w", err))
	}
	return entries, nil
}

// VerifyWallet recomputes every tier from the journal and walks the
// before/after chain from an empty wallet.
func (s *LedgerServiceImpl) VerifyWallet(ctx context.Context, id uuid.UUID) (*ports.WalletVerification, error) {
	wallet, err := s.GetWallet(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := s.entryRepo.Totals(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("ledger totals: %w", err))
	}
	entries, err := s.entryRepo.ListByWallet(ctx, id, 0)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list entries: %w", err))
	}

	var breaks int64
	var prev domain.Balances
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if !e.Before().Equal(prev) || !e.Consistent() {
			breaks++
		}
		prev = e.After()
	}

	v := &ports.WalletVerification{
		WalletID: id,
		Stored:   wallet.Balances,
		Recomputed: domain.Balances{
			Operational: totals.Operational,
			Frozen:      totals.Frozen,
			Pending:     totals.Pending,
		},
		Entries:     totals.Entries,
		ChainBreaks: breaks,
	}
	v.Consistent = v.Stored.Equal(v.Recomputed) && breaks == 0
	if !v.Consistent {
		logger.Alert(s.log, logger.AlertLedgerInvariant).
			Str("wallet_id", id.String()).
			Str("stored_operational", v.Stored.Operational.String()).
			Str("journal_operational", v.Recomputed.Operational.String()).
			Int64("chain_breaks", breaks).
			Msg("wallet balances drifted from the journal")
	}
	return v, nil
}
