package ports

import (
	"context"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/pkg/money"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// TokenService handles JWT token operations. Tokens are issued by the
// identity service; Generate exists for tooling and tests.
type TokenService interface {
	Generate(subject string, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// Token roles.
const (
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject    string
	Role       string
	MerchantID uuid.UUID // set for merchant tokens
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CallbackReplayGuard remembers provider deliveries that were fully processed.
type CallbackReplayGuard interface {
	Seen(ctx context.Context, provider, fingerprint string) (bool, error)
	Remember(ctx context.Context, provider, fingerprint string, ttl time.Duration) error
}

// LimitCache stores active limit sets under a version counter. Writers bump
// the version; readers include it in every key.
type LimitCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, scope domain.LimitScope, ownerID uuid.UUID) ([]domain.Limit, bool, error)
	Set(ctx context.Context, version int64, scope domain.LimitScope, ownerID uuid.UUID, limits []domain.Limit, ttl time.Duration) error
	Bump(ctx context.Context) (int64, error)
}

// NotificationPublisher hands merchant notifications to the delivery pipeline.
type NotificationPublisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// HealthChecker checks external dependency health.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "postgresql", "redis").
	Name() string
}

// --- Service Ports (Business Logic) ---

// LedgerService converts balance events into journal entries.
type LedgerService interface {
	// Apply locks the wallet inside tx and appends one entry.
	Apply(ctx context.Context, tx pgx.Tx, req LedgerRequest) (*domain.BalanceTransaction, error)
	Adjust(ctx context.Context, req AdjustmentRequest) (*domain.BalanceTransaction, error)
	GetWallet(ctx context.Context, id uuid.UUID) (*domain.CurrencyWallet, error)
	ListEntries(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.BalanceTransaction, error)
	VerifyWallet(ctx context.Context, id uuid.UUID) (*WalletVerification, error)
}

// LedgerRequest describes one balance movement.
type LedgerRequest struct {
	CurrencyWalletID uuid.UUID
	Event            domain.BalanceEventType
	Reverses         domain.BalanceEventType // only for COMPENSATION
	Amount           decimal.Decimal
	Initiator        domain.Initiator
	Actor            string
	TransactionID    *int64
	TransactionUUID  *uuid.UUID
	Description      string
}

// AdjustmentRequest is an operator-initiated MANUAL_ADJUSTMENT.
type AdjustmentRequest struct {
	CurrencyWalletID uuid.UUID
	Amount           decimal.Decimal // signed
	Actor            string
	Reason           string
}

// WalletVerification compares stored balances with the journal.
type WalletVerification struct {
	WalletID    uuid.UUID       `json:"wallet_id"`
	Stored      domain.Balances `json:"stored"`
	Recomputed  domain.Balances `json:"recomputed"`
	Entries     int64           `json:"entries"`
	ChainBreaks int64           `json:"chain_breaks"` // entries not continuing the previous after snapshot
	Consistent  bool            `json:"consistent"`
}

// LimitsEngine decides whether a candidate may proceed. It never returns an
// error: infrastructure failures fail open with Checked=false.
type LimitsEngine interface {
	Evaluate(ctx context.Context, candidate *domain.LimitCandidate) *domain.LimitDecision
}

// LimitAdminService manages limit configuration and alerts.
type LimitAdminService interface {
	CreateLimit(ctx context.Context, limit *domain.Limit) (*domain.Limit, error)
	UpdateLimit(ctx context.Context, limit *domain.Limit) (*domain.Limit, error)
	DeactivateLimit(ctx context.Context, id uuid.UUID) error
	ListAlerts(ctx context.Context, trxUUID uuid.UUID) ([]domain.LimitAlert, error)
	AcknowledgeAlert(ctx context.Context, id uuid.UUID, ack domain.AlertAcknowledgement) (*domain.LimitAlert, error)
}

// StatusCheckFunc asks a provider for the current state of a transaction.
type StatusCheckFunc func(ctx context.Context, trx *domain.PaymentTransaction) (*domain.RemoteStatus, error)

// TransactionStateMachine owns the PaymentTransaction lifecycle.
type TransactionStateMachine interface {
	Create(ctx context.Context, req CreateTransactionRequest) (*domain.PaymentTransaction, error)
	Transition(ctx context.Context, req TransitionRequest) (*domain.PaymentTransaction, error)
	Revert(ctx context.Context, req RevertRequest) (*domain.PaymentTransaction, error)
	FailByTimeout(ctx context.Context, id int64, declineCode string) (*domain.PaymentTransaction, error)
	ApplyRemoteStatus(ctx context.Context, id int64, status *domain.RemoteStatus) (*domain.PaymentTransaction, error)
	AttachInitiation(ctx context.Context, id int64, result *domain.InitiationResult) (*domain.PaymentTransaction, error)
	Reconcile(ctx context.Context, id int64, check StatusCheckFunc) (*domain.PaymentTransaction, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error)
}

// CreateTransactionRequest holds validated input for Create.
type CreateTransactionRequest struct {
	Type             domain.TransactionType
	Amount           decimal.Decimal
	Currency         string
	MerchantID       uuid.UUID
	CurrencyWalletID uuid.UUID
	CustomerID       *uuid.UUID
	ReferenceID      string
	Extra            domain.Extra
}

// TransitionRequest moves a transaction to a new status.
type TransitionRequest struct {
	TransactionID int64
	Status        domain.TransactionStatus
	DeclineCode   string
	DeclineReason string
	ProviderID    string
	RemoteAmount  *money.Money
	// AmountPrecision nil compares at the currency scale.
	AmountPrecision *int32
	Initiator       domain.Initiator
	Actor           string
}

// RevertRequest is an admin override expressed as compensating entries.
type RevertRequest struct {
	TransactionID int64
	TargetStatus  domain.TransactionStatus
	// ReapplyStatus optionally moves the reverted transaction forward again.
	ReapplyStatus *domain.TransactionStatus
	DeclineCode   string
	Actor         string
	Reason        string
}

// PaymentService is the inbound request surface for merchants.
type PaymentService interface {
	CreateDeposit(ctx context.Context, req PaymentRequest) (*domain.PaymentTransaction, error)
	CreateWithdrawal(ctx context.Context, req PaymentRequest) (*domain.PaymentTransaction, error)
	GetTransaction(ctx context.Context, merchantID uuid.UUID, id uuid.UUID) (*domain.PaymentTransaction, error)
}

// PaymentRequest holds validated input for deposit or withdrawal creation.
type PaymentRequest struct {
	MerchantID       uuid.UUID
	CurrencyWalletID uuid.UUID
	CustomerID       *uuid.UUID
	ReferenceID      string
	Amount           decimal.Decimal
	Currency         string
	Destination      string // withdrawals only
	Client           domain.ClientInfo
	Fields           map[string]string
}

// CallbackDispatcher routes provider callbacks and scheduled jobs.
type CallbackDispatcher interface {
	HandleCallback(ctx context.Context, raw *domain.RawCallback) (*domain.CallbackResponse, error)
	Reconcile(ctx context.Context, trxUUID uuid.UUID) (*domain.PaymentTransaction, error)
	ReconcileDue(ctx context.Context, now time.Time) (int, error)
	FailExpired(ctx context.Context, now time.Time) (int, error)
}

// NotificationOutbox records a merchant notification inside the unit of work
// that changed the transaction status.
type NotificationOutbox interface {
	Enqueue(ctx context.Context, tx pgx.Tx, trx *domain.PaymentTransaction) error
}

// OutboxRelay publishes pending merchant notifications.
type OutboxRelay interface {
	RelayOnce(ctx context.Context, batch int) (int, error)
}

// AuditService records operator actions asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
