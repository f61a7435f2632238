package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/logger"
	"payment-hub/pkg/money"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// TransactionSettings tunes the state machine.
type TransactionSettings struct {
	// PendingTTL is how long a transaction may stay PENDING before
	// FailByTimeout fails it.
	PendingTTL time.Duration
	Retry      RetryPolicy
}

// TransactionServiceImpl implements ports.TransactionStateMachine. All
// status changes and their ledger effects go through here.
type TransactionServiceImpl struct {
	trxRepo    ports.TransactionRepository
	walletRepo ports.CurrencyWalletRepository
	alertRepo  ports.LimitAlertRepository
	ledger     ports.LedgerService
	limits     ports.LimitsEngine
	outbox     ports.NotificationOutbox
	transactor ports.DBTransactor
	settings   TransactionSettings
	log        zerolog.Logger
	now        func() time.Time
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(
	trxRepo ports.TransactionRepository,
	walletRepo ports.CurrencyWalletRepository,
	alertRepo ports.LimitAlertRepository,
	ledger ports.LedgerService,
	limits ports.LimitsEngine,
	outbox ports.NotificationOutbox,
	transactor ports.DBTransactor,
	settings TransactionSettings,
	log zerolog.Logger,
) *TransactionServiceImpl {
	if settings.PendingTTL <= 0 {
		settings.PendingTTL = 24 * time.Hour
	}
	return &TransactionServiceImpl{
		trxRepo:    trxRepo,
		walletRepo: walletRepo,
		alertRepo:  alertRepo,
		ledger:     ledger,
		limits:     limits,
		outbox:     outbox,
		transactor: transactor,
		settings:   settings,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the request, runs the limits engine and stores the new
// transaction with its alerts and creation ledger effects in one unit of work.
// A limit decline is not an error: the transaction is stored FAILED.
func (s *TransactionServiceImpl) Create(ctx context.Context, req ports.CreateTransactionRequest) (*domain.PaymentTransaction, error) {
	if !req.Type.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown transaction type %q", req.Type))
	}
	m, err := money.New(req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, money.ErrUnknownCurrency) {
			return nil, apperror.ErrUnsupportedCurrency(req.Currency)
		}
		return nil, apperror.Validation(err.Error())
	}
	if strings.TrimSpace(req.ReferenceID) == "" {
		return nil, apperror.Validation("reference_id is required")
	}
	if req.MerchantID == uuid.Nil || req.CurrencyWalletID == uuid.Nil {
		return nil, apperror.Validation("merchant and currency wallet are required")
	}

	trxUUID := uuid.New()
	decision := s.limits.Evaluate(ctx, &domain.LimitCandidate{
		TransactionUUID:  trxUUID,
		Type:             req.Type,
		Amount:           m.Amount,
		Currency:         m.Currency,
		MerchantID:       req.MerchantID,
		CurrencyWalletID: req.CurrencyWalletID,
		CustomerID:       req.CustomerID,
	})

	return withLockRetry(ctx, s.settings.Retry, s.log, "transaction.create", func() (*domain.PaymentTransaction, error) {
		now := s.now()
		trx := &domain.PaymentTransaction{
			UUID:             trxUUID,
			Type:             req.Type,
			Status:           domain.TransactionStatusPending,
			Amount:           m.Amount,
			Currency:         m.Currency,
			MerchantID:       req.MerchantID,
			CurrencyWalletID: req.CurrencyWalletID,
			CustomerID:       req.CustomerID,
			ReferenceID:      req.ReferenceID,
			Extra:            req.Extra,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return s.create(ctx, trx, decision)
	})
}

func (s *TransactionServiceImpl) create(ctx context.Context, trx *domain.PaymentTransaction, decision *domain.LimitDecision) (*domain.PaymentTransaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, trx.CurrencyWalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil || wallet.MerchantID != trx.MerchantID {
		return nil, apperror.ErrNotFound("currency wallet")
	}
	if wallet.Currency != trx.Currency {
		return nil, apperror.ErrUnsupportedCurrency(trx.Currency)
	}
	trx.Provider = wallet.PaymentSystem

	if decision.Declined {
		code, reason := domain.DeclineCodeLimitExceeded, decision.DeclineReason()
		trx.Status = domain.TransactionStatusFailed
		trx.DeclineCode = &code
		trx.DeclineReason = &reason
	} else {
		deadline := trx.CreatedAt.Add(s.settings.PendingTTL)
		trx.CheckStatusUntil = &deadline
		if trx.Type == domain.TransactionTypeWithdrawal && wallet.Available().LessThan(trx.Amount) {
			return nil, apperror.ErrInsufficientFunds()
		}
	}

	if err := s.trxRepo.Create(ctx, dbTx, trx); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return nil, apperror.ErrDuplicateTransaction()
		}
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	for _, alert := range decision.Alerts {
		if err := s.alertRepo.Create(ctx, dbTx, alert); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create limit alert: %w", err))
		}
	}

	if decision.Declined {
		if err := s.outbox.Enqueue(ctx, dbTx, trx); err != nil {
			return nil, err
		}
	} else {
		for _, event := range domain.CreationEvents(trx.Type) {
			if _, err := s.ledger.Apply(ctx, dbTx, s.ledgerRequest(trx, event, domain.InitiatorSystem, "", "create "+string(trx.Type))); err != nil {
				return nil, err
			}
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("transaction_id", trx.UUID.String()).
		Str("type", string(trx.Type)).
		Str("status", string(trx.Status)).
		Str("amount", trx.Amount.String()).
		Str("currency", trx.Currency).
		Str("merchant_id", trx.MerchantID.String()).
		Str("provider", trx.Provider).
		Bool("limits_checked", decision.Checked).
		Int("limit_alerts", len(decision.Alerts)).
		Msg("transaction created")
	return trx, nil
}

// Transition moves a transaction forward under its row lock. Repeating the
// current status is a no-op so duplicate callbacks are harmless.
func (s *TransactionServiceImpl) Transition(ctx context.Context, req ports.TransitionRequest) (*domain.PaymentTransaction, error) {
	if !req.Status.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown status %q", req.Status))
	}
	return withLockRetry(ctx, s.settings.Retry, s.log, "transaction.transition", func() (*domain.PaymentTransaction, error) {
		return s.inUnitOfWork(ctx, req.TransactionID, func(dbTx pgx.Tx, trx *domain.PaymentTransaction) (bool, error) {
			return s.applyTransition(ctx, dbTx, trx, req)
		})
	})
}

// FailByTimeout fails a transaction that is still pending past its deadline.
// Anything else is left untouched, so redundant runs are safe.
func (s *TransactionServiceImpl) FailByTimeout(ctx context.Context, id int64, declineCode string) (*domain.PaymentTransaction, error) {
	if declineCode == "" {
		declineCode = domain.DeclineCodePendingExpired
	}
	return withLockRetry(ctx, s.settings.Retry, s.log, "transaction.fail_by_timeout", func() (*domain.PaymentTransaction, error) {
		return s.inUnitOfWork(ctx, id, func(dbTx pgx.Tx, trx *domain.PaymentTransaction) (bool, error) {
			if !trx.IsExpired(s.now()) {
				return false, nil
			}
			return s.applyTransition(ctx, dbTx, trx, ports.TransitionRequest{
				TransactionID: id,
				Status:        domain.TransactionStatusFailed,
				DeclineCode:   declineCode,
				DeclineReason: "pending deadline reached without a final provider status",
				Initiator:     domain.InitiatorSystem,
			})
		})
	})
}

// Revert returns a transaction to an earlier status by appending
// compensating entries for every forward event in reverse order, then
// optionally moves it forward again.
func (s *TransactionServiceImpl) Revert(ctx context.Context, req ports.RevertRequest) (*domain.PaymentTransaction, error) {
	if req.Actor == "" || strings.TrimSpace(req.Reason) == "" {
		return nil, apperror.Validation("actor and reason are required for a revert")
	}
	if req.TargetStatus != domain.TransactionStatusPending && req.TargetStatus != domain.TransactionStatusSuccess {
		return nil, apperror.ErrRevertNotAllowed(fmt.Sprintf("cannot revert to %s", req.TargetStatus))
	}
	if req.ReapplyStatus != nil && !req.ReapplyStatus.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown status %q", *req.ReapplyStatus))
	}

	return withLockRetry(ctx, s.settings.Retry, s.log, "transaction.revert", func() (*domain.PaymentTransaction, error) {
		return s.inUnitOfWork(ctx, req.TransactionID, func(dbTx pgx.Tx, trx *domain.PaymentTransaction) (bool, error) {
			return true, s.revert(ctx, dbTx, trx, req)
		})
	})
}

func (s *TransactionServiceImpl) revert(ctx context.Context, dbTx pgx.Tx, trx *domain.PaymentTransaction, req ports.RevertRequest) error {
	from := trx.Status
	path, ok := domain.RevertPath(from, req.TargetStatus)
	if !ok {
		return apperror.ErrRevertNotAllowed(fmt.Sprintf("%s is not reachable back from %s", req.TargetStatus, from))
	}

	compensated := 0
	for i := len(path) - 1; i >= 0; i-- {
		edge := path[i]
		events, err := domain.TransitionEvents(trx.Type, edge.From, edge.To)
		if err != nil {
			return apperror.ErrRevertNotAllowed(err.Error())
		}
		for j := len(events) - 1; j >= 0; j-- {
			lr := s.ledgerRequest(trx, domain.EventCompensation, domain.InitiatorAdmin, req.Actor,
				fmt.Sprintf("revert %s -> %s: %s", edge.To, edge.From, req.Reason))
			lr.Reverses = events[j]
			if _, err := s.ledger.Apply(ctx, dbTx, lr); err != nil {
				return err
			}
			compensated++
		}
	}

	now := s.now()
	trx.Status = req.TargetStatus
	if req.TargetStatus == domain.TransactionStatusPending {
		deadline := now.Add(s.settings.PendingTTL)
		trx.DeclineCode = nil
		trx.DeclineReason = nil
		trx.CheckStatusUntil = &deadline
	}
	trx.Extra.RevertCount++
	trx.UpdatedAt = now
	if err := s.trxRepo.Update(ctx, dbTx, trx); err != nil {
		return apperror.InternalError(fmt.Errorf("update transaction: %w", err))
	}
	if err := s.outbox.Enqueue(ctx, dbTx, trx); err != nil {
		return err
	}

	s.log.Warn().
		Str("transaction_id", trx.UUID.String()).
		Str("from_status", string(from)).
		Str("to_status", string(trx.Status)).
		Int("compensating_entries", compensated).
		Str("actor", req.Actor).
		Str("reason", req.Reason).
		Msg("transaction reverted")

	if req.ReapplyStatus == nil {
		return nil
	}
	_, err := s.applyTransition(ctx, dbTx, trx, ports.TransitionRequest{
		TransactionID: trx.ID,
		Status:        *req.ReapplyStatus,
		DeclineCode:   req.DeclineCode,
		DeclineReason: req.Reason,
		Initiator:     domain.InitiatorAdmin,
		Actor:         req.Actor,
	})
	return err
}

// ApplyRemoteStatus feeds a normalized provider status into the state
// machine. A pending status only records what the provider told us.
func (s *TransactionServiceImpl) ApplyRemoteStatus(ctx context.Context, id int64, status *domain.RemoteStatus) (*domain.PaymentTransaction, error) {
	if status == nil || !status.Status.Valid() {
		return nil, apperror.Validation("provider status is missing or unknown")
	}
	return withLockRetry(ctx, s.settings.Retry, s.log, "transaction.remote_status", func() (*domain.PaymentTransaction, error) {
		return s.inUnitOfWork(ctx, id, func(dbTx pgx.Tx, trx *domain.PaymentTransaction) (bool, error) {
			now := s.now()
			trx.Extra.LastCallbackAt = &now
			if status.Status == domain.TransactionStatusPending {
				setProviderID(trx, status.ProviderID)
				return true, s.touch(ctx, dbTx, trx)
			}
			return s.applyTransition(ctx, dbTx, trx, remoteTransition(trx.ID, status))
		})
	})
}

// AttachInitiation stores what the provider returned when the payment was
// started. A synchronous final status is applied in the same unit of work.
func (s *TransactionServiceImpl) AttachInitiation(ctx context.Context, id int64, result *domain.InitiationResult) (*domain.PaymentTransaction, error) {
	if result == nil {
		return nil, apperror.Validation("initiation result is required")
	}
	return withLockRetry(ctx, s.settings.Retry, s.log, "transaction.attach_initiation", func() (*domain.PaymentTransaction, error) {
		return s.inUnitOfWork(ctx, id, func(dbTx pgx.Tx, trx *domain.PaymentTransaction) (bool, error) {
			setProviderID(trx, result.ProviderID)
			if result.RedirectURL != "" {
				trx.Extra.RedirectURL = result.RedirectURL
			}
			for k, v := range result.Fields {
				trx.Extra.Set(k, v)
			}
			if trx.Status == domain.TransactionStatusPending && result.Status.IsTerminal() && result.Status.Valid() {
				changed, err := s.applyTransition(ctx, dbTx, trx, ports.TransitionRequest{
					TransactionID: trx.ID,
					Status:        result.Status,
					DeclineCode:   result.DeclineCode,
					DeclineReason: result.DeclineReason,
					ProviderID:    result.ProviderID,
					Initiator:     domain.InitiatorSystem,
				})
				if err != nil || changed {
					return changed, err
				}
			}
			return true, s.touch(ctx, dbTx, trx)
		})
	})
}

// Reconcile asks the provider for the current status while holding the row
// lock, so at most one check runs per transaction. A failed check leaves the
// transaction as it was.
func (s *TransactionServiceImpl) Reconcile(ctx context.Context, id int64, check ports.StatusCheckFunc) (*domain.PaymentTransaction, error) {
	return withLockRetry(ctx, s.settings.Retry, s.log, "transaction.reconcile", func() (*domain.PaymentTransaction, error) {
		return s.inUnitOfWork(ctx, id, func(dbTx pgx.Tx, trx *domain.PaymentTransaction) (bool, error) {
			if trx.IsTerminal() {
				return false, nil
			}
			remote, err := check(ctx, trx)
			if err != nil {
				s.log.Warn().Err(err).
					Str("transaction_id", trx.UUID.String()).
					Str("provider", trx.Provider).
					Msg("status check failed")
				return false, apperror.ErrProviderUnavailable(err)
			}
			if remote == nil || remote.Status == domain.TransactionStatusPending {
				if remote != nil {
					setProviderID(trx, remote.ProviderID)
				}
				return true, s.touch(ctx, dbTx, trx)
			}
			return s.applyTransition(ctx, dbTx, trx, remoteTransition(trx.ID, remote))
		})
	})
}

func (s *TransactionServiceImpl) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	trx, err := s.trxRepo.GetByUUID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if trx == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	return trx, nil
}

// inUnitOfWork locks the transaction row and runs fn. The unit of work is
// committed only when fn reports a change.
func (s *TransactionServiceImpl) inUnitOfWork(ctx context.Context, id int64, fn func(pgx.Tx, *domain.PaymentTransaction) (bool, error)) (*domain.PaymentTransaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	trx, err := s.trxRepo.GetByIDForUpdate(ctx, dbTx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock transaction: %w", err))
	}
	if trx == nil {
		return nil, apperror.ErrNotFound("transaction")
	}

	changed, err := fn(dbTx, trx)
	if err != nil {
		return nil, err
	}
	if !changed {
		return trx, nil
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return trx, nil
}

// applyTransition validates and applies one forward move inside dbTx. It
// reports false when the transaction already has the requested status.
func (s *TransactionServiceImpl) applyTransition(ctx context.Context, dbTx pgx.Tx, trx *domain.PaymentTransaction, req ports.TransitionRequest) (bool, error) {
	from := trx.Status
	if from == req.Status {
		s.log.Debug().
			Str("transaction_id", trx.UUID.String()).
			Str("status", string(from)).
			Msg("transition to current status ignored")
		return false, nil
	}
	events, err := domain.TransitionEvents(trx.Type, from, req.Status)
	if err != nil {
		return false, apperror.ErrInvalidTransition(string(from), string(req.Status))
	}

	if remote := req.RemoteAmount; remote != nil {
		if !strings.EqualFold(remote.Currency, trx.Currency) {
			return false, apperror.ErrCurrencyMismatch()
		}
		precision := domain.ComparePrecision(req.AmountPrecision)
		if !trx.Money().EqualWithin(*remote, precision) {
			logger.Alert(s.log, logger.AlertAmountMismatch).
				Str("transaction_id", trx.UUID.String()).
				Str("provider", trx.Provider).
				Str("expected", trx.Money().String()).
				Str("reported", remote.String()).
				Int32("precision", precision).
				Msg("provider amount does not match transaction")
			return false, apperror.ErrAmountMismatch()
		}
	}

	initiator := req.Initiator
	if initiator == "" {
		initiator = domain.InitiatorSystem
	}
	desc := fmt.Sprintf("%s %s -> %s", strings.ToLower(string(trx.Type)), from, req.Status)
	for _, event := range events {
		if _, err := s.ledger.Apply(ctx, dbTx, s.ledgerRequest(trx, event, initiator, req.Actor, desc)); err != nil {
			return false, err
		}
	}

	trx.Status = req.Status
	if req.Status == domain.TransactionStatusFailed {
		code := req.DeclineCode
		if code == "" {
			code = domain.DeclineCodeProviderDecline
		}
		trx.DeclineCode = &code
		if req.DeclineReason != "" {
			reason := req.DeclineReason
			trx.DeclineReason = &reason
		}
	}
	setProviderID(trx, req.ProviderID)
	trx.UpdatedAt = s.now()

	if err := s.trxRepo.Update(ctx, dbTx, trx); err != nil {
		return false, apperror.InternalError(fmt.Errorf("update transaction: %w", err))
	}
	if err := s.outbox.Enqueue(ctx, dbTx, trx); err != nil {
		return false, err
	}

	ev := s.log.Info().
		Str("transaction_id", trx.UUID.String()).
		Str("type", string(trx.Type)).
		Str("from_status", string(from)).
		Str("to_status", string(trx.Status)).
		Str("amount", trx.Amount.String()).
		Str("currency", trx.Currency).
		Str("initiator", string(initiator)).
		Str("actor", req.Actor)
	if trx.DeclineCode != nil {
		ev = ev.Str("decline_code", *trx.DeclineCode)
	}
	ev.Msg("transaction status changed")
	return true, nil
}

func (s *TransactionServiceImpl) touch(ctx context.Context, dbTx pgx.Tx, trx *domain.PaymentTransaction) error {
	trx.UpdatedAt = s.now()
	if err := s.trxRepo.Update(ctx, dbTx, trx); err != nil {
		return apperror.InternalError(fmt.Errorf("update transaction: %w", err))
	}
	return nil
}

func (s *TransactionServiceImpl) ledgerRequest(trx *domain.PaymentTransaction, event domain.BalanceEventType, initiator domain.Initiator, actor, desc string) ports.LedgerRequest {
	id, trxUUID := trx.ID, trx.UUID
	return ports.LedgerRequest{
		CurrencyWalletID: trx.CurrencyWalletID,
		Event:            event,
		Amount:           trx.Amount,
		Initiator:        initiator,
		Actor:            actor,
		TransactionID:    &id,
		TransactionUUID:  &trxUUID,
		Description:      desc,
	}
}

func remoteTransition(id int64, st *domain.RemoteStatus) ports.TransitionRequest {
	return ports.TransitionRequest{
		TransactionID:   id,
		Status:          st.Status,
		DeclineCode:     st.DeclineCode,
		DeclineReason:   st.DeclineReason,
		ProviderID:      st.ProviderID,
		RemoteAmount:    st.Amount,
		AmountPrecision: st.AmountPrecision,
		Initiator:       domain.InitiatorSystem,
	}
}

// setProviderID records the first provider id; later ones never overwrite it.
func setProviderID(trx *domain.PaymentTransaction, providerID string) {
	if providerID == "" || trx.ProviderID != nil {
		return
	}
	trx.ProviderID = &providerID
}
