package ports

import (
	"context"
	"errors"
	"time"

	"payment-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	// ErrLockTimeout is returned when a row lock could not be acquired in time.
	ErrLockTimeout = errors.New("lock acquisition timed out")
	// ErrNotFound is returned by writes that target a missing row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness rule.
	ErrDuplicate = errors.New("duplicate record")
)

// TransactionRepository defines persistence operations for payment transactions.
// Methods accepting pgx.Tx run inside the caller's unit of work.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, trx *domain.PaymentTransaction) error
	GetByID(ctx context.Context, id int64) (*domain.PaymentTransaction, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error)
	GetByProviderID(ctx context.Context, provider, providerID string) (*domain.PaymentTransaction, error)
	GetByReference(ctx context.Context, merchantID uuid.UUID, trxType domain.TransactionType, referenceID string) (*domain.PaymentTransaction, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.PaymentTransaction, error)
	Update(ctx context.Context, tx pgx.Tx, trx *domain.PaymentTransaction) error
	ListPending(ctx context.Context, params PendingListParams) ([]domain.PaymentTransaction, error)
	// WindowStats is the read-only history surface used by the limits engine.
	WindowStats(ctx context.Context, filter StatsFilter) (*domain.LimitStatistics, error)
}

// PendingListParams selects pending transactions for the scheduler.
type PendingListParams struct {
	// ExpiredAt selects transactions whose deadline is at or before this time.
	ExpiredAt *time.Time
	// IdleSince selects transactions not updated since this time.
	IdleSince *time.Time
	Limit     int
}

// StatsFilter scopes a history query for one limit.
type StatsFilter struct {
	CustomerID         *uuid.UUID
	MerchantID         *uuid.UUID
	Type               *domain.TransactionType
	Currency           string
	Since              time.Time
	ExcludeDeclineCode string
}

// CurrencyWalletRepository defines persistence operations for currency wallets.
type CurrencyWalletRepository interface {
	Create(ctx context.Context, wallet *domain.CurrencyWallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CurrencyWallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CurrencyWallet, error)
	UpdateBalances(ctx context.Context, tx pgx.Tx, id uuid.UUID, balances domain.Balances) error
}

// BalanceTransactionRepository is the append-only ledger journal.
type BalanceTransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.BalanceTransaction) error
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.BalanceTransaction, error)
	ListByTransaction(ctx context.Context, trxID int64) ([]domain.BalanceTransaction, error)
	// Totals sums the journal for a wallet: operational amounts and frozen/pending deltas.
	Totals(ctx context.Context, walletID uuid.UUID) (*LedgerTotals, error)
}

// LedgerTotals is the balance recomputed from the journal.
type LedgerTotals struct {
	Operational decimal.Decimal
	Frozen      decimal.Decimal
	Pending     decimal.Decimal
	Entries     int64
}

// LimitRepository persists limit configuration.
type LimitRepository interface {
	Create(ctx context.Context, limit *domain.Limit) error
	Update(ctx context.Context, limit *domain.Limit) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Limit, error)
	ListActive(ctx context.Context, scope domain.LimitScope, ownerID uuid.UUID) ([]domain.Limit, error)
}

// LimitAlertRepository persists limit alerts. Alerts are only ever extended
// with acknowledgements.
type LimitAlertRepository interface {
	Create(ctx context.Context, tx pgx.Tx, alert *domain.LimitAlert) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LimitAlert, error)
	ListByTransaction(ctx context.Context, trxUUID uuid.UUID) ([]domain.LimitAlert, error)
	AddAcknowledgement(ctx context.Context, id uuid.UUID, ack domain.AlertAcknowledgement) error
}

// NotificationRepository is the merchant notification outbox.
type NotificationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, n *domain.MerchantNotification) error
	ListUnpublished(ctx context.Context, limit int) ([]domain.MerchantNotification, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
