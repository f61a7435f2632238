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
	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// PaymentServiceImpl implements ports.PaymentService. It turns merchant
// requests into transactions and starts them at the provider.
type PaymentServiceImpl struct {
	trxRepo         ports.TransactionRepository
	stateMachine    ports.TransactionStateMachine
	registry        ports.ControllerRegistry
	idempCache      ports.IdempotencyCache
	providerTimeout time.Duration
	log             zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	trxRepo ports.TransactionRepository,
	stateMachine ports.TransactionStateMachine,
	registry ports.ControllerRegistry,
	idempCache ports.IdempotencyCache,
	providerTimeout time.Duration,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		trxRepo:         trxRepo,
		stateMachine:    stateMachine,
		registry:        registry,
		idempCache:      idempCache,
		providerTimeout: providerTimeout,
		log:             log,
	}
}

func (s *PaymentServiceImpl) CreateDeposit(ctx context.Context, req ports.PaymentRequest) (*domain.PaymentTransaction, error) {
	return s.create(ctx, domain.TransactionTypeDeposit, req)
}

func (s *PaymentServiceImpl) CreateWithdrawal(ctx context.Context, req ports.PaymentRequest) (*domain.PaymentTransaction, error) {
	if req.Destination == "" {
		return nil, apperror.Validation("destination is required for a withdrawal")
	}
	return s.create(ctx, domain.TransactionTypeWithdrawal, req)
}

// GetTransaction only returns transactions owned by merchantID.
func (s *PaymentServiceImpl) GetTransaction(ctx context.Context, merchantID uuid.UUID, id uuid.UUID) (*domain.PaymentTransaction, error) {
	trx, err := s.stateMachine.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trx.MerchantID != merchantID {
		return nil, apperror.ErrNotFound("transaction")
	}
	return trx, nil
}

func (s *PaymentServiceImpl) create(ctx context.Context, typ domain.TransactionType, req ports.PaymentRequest) (*domain.PaymentTransaction, error) {
	idempKey := domain.BuildIdempotencyKey(req.MerchantID, typ, req.ReferenceID)

	// Layer 1: Redis idempotency check
	existing, err := s.cachedTransaction(ctx, idempKey, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// Layer 2: merchant reference in the database
	existing, err = s.trxRepo.GetByReference(ctx, req.MerchantID, typ, req.ReferenceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup by reference: %w", err))
	}
	if existing != nil {
		s.remember(ctx, idempKey, existing.UUID)
		return existing, nil
	}

	extra := domain.Extra{
		IdempotencyKey: idempKey,
		ClientIP:       req.Client.IP,
		Destination:    req.Destination,
	}
	for k, v := range req.Fields {
		extra.Set(k, v)
	}
	trx, err := s.stateMachine.Create(ctx, ports.CreateTransactionRequest{
		Type:             typ,
		Amount:           req.Amount,
		Currency:         req.Currency,
		MerchantID:       req.MerchantID,
		CurrencyWalletID: req.CurrencyWalletID,
		CustomerID:       req.CustomerID,
		ReferenceID:      req.ReferenceID,
		Extra:            extra,
	})
	if err != nil {
		// A concurrent request with the same reference won the insert.
		if apperror.CodeOf(err) == apperror.ErrDuplicateTransaction().Code {
			if winner, lookupErr := s.trxRepo.GetByReference(ctx, req.MerchantID, typ, req.ReferenceID); lookupErr == nil && winner != nil {
				return winner, nil
			}
		}
		return nil, err
	}
	s.remember(ctx, idempKey, trx.UUID)

	if trx.Status != domain.TransactionStatusPending {
		return trx, nil
	}
	return s.initiate(ctx, trx, req.Client)
}

// initiate calls the provider outside of any row lock. Safe failures fail
// the transaction right away; anything else leaves it pending for
// reconciliation.
func (s *PaymentServiceImpl) initiate(ctx context.Context, trx *domain.PaymentTransaction, client domain.ClientInfo) (*domain.PaymentTransaction, error) {
	ctrl, ok := s.registry.Get(trx.Provider)
	if !ok {
		s.log.Error().
			Str("transaction_id", trx.UUID.String()).
			Str("provider", trx.Provider).
			Msg("wallet routes to a provider with no controller")
		return s.stateMachine.Transition(ctx, ports.TransitionRequest{
			TransactionID: trx.ID,
			Status:        domain.TransactionStatusFailed,
			DeclineCode:   domain.DeclineCodeProviderError,
			DeclineReason: fmt.Sprintf("provider %q is not configured", trx.Provider),
			Initiator:     domain.InitiatorSystem,
		})
	}

	result, err := newProviderSession(ctrl, trx, s.providerTimeout, s.log).initiate(ctx, client)
	if err != nil {
		if pe, safe := domain.AsSafeProviderError(err); safe {
			return s.stateMachine.Transition(ctx, ports.TransitionRequest{
				TransactionID: trx.ID,
				Status:        domain.TransactionStatusFailed,
				DeclineCode:   pe.Code,
				DeclineReason: pe.Message,
				Initiator:     domain.InitiatorSystem,
			})
		}
		logger.Alert(s.log, logger.AlertProviderUnknown).
			Err(err).
			Str("transaction_id", trx.UUID.String()).
			Str("provider", trx.Provider).
			Msg("provider outcome unknown, transaction left pending for reconciliation")
		return trx, nil
	}

	updated, err := s.stateMachine.AttachInitiation(ctx, trx.ID, result)
	if err != nil {
		s.log.Error().Err(err).
			Str("transaction_id", trx.UUID.String()).
			Str("provider_id", result.ProviderID).
			Msg("failed to store initiation result")
		return nil, err
	}
	return updated, nil
}

func (s *PaymentServiceImpl) cachedTransaction(ctx context.Context, key string, merchantID uuid.UUID) (*domain.PaymentTransaction, error) {
	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to DB")
		return nil, nil
	}
	if cached == nil {
		return nil, nil
	}
	id, err := uuid.ParseBytes(cached)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("ignoring malformed idempotency entry")
		return nil, nil
	}
	trx, err := s.trxRepo.GetByUUID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get cached transaction: %w", err))
	}
	if trx == nil || trx.MerchantID != merchantID {
		return nil, nil
	}
	return trx, nil
}

// remember caches the key best-effort; the reference lookup is the fallback.
func (s *PaymentServiceImpl) remember(ctx context.Context, key string, id uuid.UUID) {
	if err := s.idempCache.Set(ctx, key, []byte(id.String()), idempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache idempotency in redis")
	}
}
