package service

import (
	"context"
	"errors"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/rs/zerolog"
)

// providerSession brackets one initiation call to a provider. It bounds the
// call with a timeout, logs start and finish, and makes sure every failure
// reaching the caller is a *domain.ProviderError.
type providerSession struct {
	ctrl    ports.PaymentSystemController
	trx     *domain.PaymentTransaction
	timeout time.Duration
	log     zerolog.Logger
}

func newProviderSession(ctrl ports.PaymentSystemController, trx *domain.PaymentTransaction, timeout time.Duration, log zerolog.Logger) *providerSession {
	return &providerSession{
		ctrl:    ctrl,
		trx:     trx,
		timeout: timeout,
		log: log.With().
			Str("provider", ctrl.Name()).
			Str("transaction_id", trx.UUID.String()).
			Str("type", string(trx.Type)).
			Logger(),
	}
}

// initiate runs the deposit or withdrawal call for the session transaction.
func (p *providerSession) initiate(ctx context.Context, client domain.ClientInfo) (*domain.InitiationResult, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.log.Info().
		Str("amount", p.trx.Amount.String()).
		Str("currency", p.trx.Currency).
		Str("client_ip", client.IP).
		Msg("provider session started")
	start := time.Now()

	var (
		result *domain.InitiationResult
		err    error
	)
	if p.trx.Type == domain.TransactionTypeWithdrawal {
		result, err = p.ctrl.InitiateWithdraw(ctx, p.trx, client)
	} else {
		result, err = p.ctrl.InitiateDeposit(ctx, p.trx, client)
	}
	if err == nil && result == nil {
		err = errors.New("controller returned no result")
	}
	elapsed := time.Since(start)

	if err != nil {
		var pe *domain.ProviderError
		if !errors.As(err, &pe) {
			pe = domain.NewUnknownProviderError(p.ctrl.Name(), "initiation failed", err)
		}
		p.log.Warn().Err(pe).
			Bool("safe", pe.Safe).
			Str("code", pe.Code).
			Dur("duration", elapsed).
			Msg("provider session failed")
		return nil, pe
	}

	if result.Status == "" {
		result.Status = domain.TransactionStatusPending
	}
	p.log.Info().
		Str("provider_id", result.ProviderID).
		Str("status", string(result.Status)).
		Bool("redirect", result.RedirectURL != "").
		Dur("duration", elapsed).
		Msg("provider session finished")
	return result, nil
}
