package ports

import (
	"context"

	"payment-hub/internal/core/domain"
)

// PaymentSystemController is implemented once per payment provider. The
// state machine and dispatcher only ever see this interface.
type PaymentSystemController interface {
	// Name is the registry key and the value stored in PaymentTransaction.Provider.
	Name() string
	InitiateDeposit(ctx context.Context, trx *domain.PaymentTransaction, client domain.ClientInfo) (*domain.InitiationResult, error)
	InitiateWithdraw(ctx context.Context, trx *domain.PaymentTransaction, client domain.ClientInfo) (*domain.InitiationResult, error)
	// ParseCallback returns either a normalized status or a direct response.
	ParseCallback(ctx context.Context, raw *domain.RawCallback) (*domain.CallbackResult, error)
	ValidateCallbackSignature(ctx context.Context, raw *domain.RawCallback) bool
	BuildCallbackResponse(ctx context.Context, raw *domain.RawCallback) *domain.CallbackResponse
	// CheckStatus must be idempotent; it is called by reconciliation.
	CheckStatus(ctx context.Context, trx *domain.PaymentTransaction) (*domain.RemoteStatus, error)
}

// ControllerRegistry resolves controllers by provider name.
type ControllerRegistry interface {
	Get(name string) (PaymentSystemController, bool)
	Names() []string
}
