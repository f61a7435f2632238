package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const trxColumns = `id, uuid, type, status, amount, currency, merchant_id, currency_wallet_id,
	customer_id, provider, provider_id, reference_id, decline_code, decline_reason,
	extra, check_status_until, created_at, updated_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction within a database transaction and sets its
// internal ID.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.PaymentTransaction) error {
	query := `INSERT INTO payment_transactions (uuid, type, status, amount, currency, merchant_id,
		currency_wallet_id, customer_id, provider, provider_id, reference_id, decline_code,
		decline_reason, extra, check_status_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		t.UUID, t.Type, t.Status, t.Amount, t.Currency, t.MerchantID,
		t.CurrencyWalletID, t.CustomerID, t.Provider, t.ProviderID, t.ReferenceID, t.DeclineCode,
		t.DeclineReason, t.Extra, t.CheckStatusUntil, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("insert payment transaction: %w", ports.ErrDuplicate)
		}
		return fmt.Errorf("insert payment transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by internal ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM payment_transactions WHERE id = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByUUID fetches a transaction by its external ID.
func (r *TransactionRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM payment_transactions WHERE uuid = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByProviderID fetches a transaction by the provider's own reference.
func (r *TransactionRepo) GetByProviderID(ctx context.Context, provider, providerID string) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM payment_transactions WHERE provider = $1 AND provider_id = $2`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, provider, providerID))
}

// GetByReference fetches a transaction by merchant reference for idempotency.
func (r *TransactionRepo) GetByReference(ctx context.Context, merchantID uuid.UUID, trxType domain.TransactionType, referenceID string) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM payment_transactions
		WHERE merchant_id = $1 AND type = $2 AND reference_id = $3`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, merchantID, trxType, referenceID))
}

// GetByIDForUpdate locks the transaction row for the rest of tx.
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + trxColumns + ` FROM payment_transactions WHERE id = $1 FOR UPDATE`

	t, err := r.scanTransaction(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, lockError("lock payment transaction", err)
	}
	return t, nil
}

// Update persists the mutable fields of a transaction within a database transaction.
func (r *TransactionRepo) Update(ctx context.Context, tx pgx.Tx, t *domain.PaymentTransaction) error {
	query := `UPDATE payment_transactions SET status = $1, provider_id = $2, decline_code = $3,
		decline_reason = $4, extra = $5, check_status_until = $6, updated_at = $7 WHERE id = $8`

	tag, err := tx.Exec(ctx, query,
		t.Status, t.ProviderID, t.DeclineCode, t.DeclineReason,
		t.Extra, t.CheckStatusUntil, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment transaction %d: %w", t.ID, ports.ErrNotFound)
	}
	return nil
}

// ListPending returns pending transactions for the scheduler, oldest first.
func (r *TransactionRepo) ListPending(ctx context.Context, params ports.PendingListParams) ([]domain.PaymentTransaction, error) {
	conditions := []string{"status = 'PENDING'"}
	var args []any
	argIdx := 1

	if params.ExpiredAt != nil {
		conditions = append(conditions, fmt.Sprintf("check_status_until <= $%d", argIdx))
		args = append(args, *params.ExpiredAt)
		argIdx++
	}
	if params.IdleSince != nil {
		conditions = append(conditions, fmt.Sprintf("updated_at <= $%d", argIdx))
		args = append(args, *params.IdleSince)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM payment_transactions WHERE %s ORDER BY id LIMIT $%d`,
		trxColumns, strings.Join(conditions, " AND "), argIdx)
	args = append(args, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.PaymentTransaction
	for rows.Next() {
		t, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending transactions: %w", err)
	}
	return txns, nil
}

// WindowStats aggregates the history a limit is evaluated against.
func (r *TransactionRepo) WindowStats(ctx context.Context, f ports.StatsFilter) (*domain.LimitStatistics, error) {
	var conditions []string
	var args []any
	argIdx := 1

	add := func(cond string, v any) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, v)
		argIdx++
	}

	if f.CustomerID != nil {
		add("customer_id = $%d", *f.CustomerID)
	}
	if f.MerchantID != nil {
		add("merchant_id = $%d", *f.MerchantID)
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.Currency != "" {
		add("currency = $%d", f.Currency)
	}
	if !f.Since.IsZero() {
		add("created_at >= $%d", f.Since)
	}
	if len(conditions) == 0 {
		return nil, errors.New("window stats: owner filter is required")
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) FILTER (WHERE status IN (%[1]s)) AS successful,
		COUNT(*) FILTER (WHERE status = 'FAILED' AND COALESCE(decline_code, '') <> $%[2]d) AS failed,
		COALESCE(SUM(amount) FILTER (WHERE status IN (%[1]s)), 0) AS success_amount
		FROM payment_transactions WHERE %[3]s`, successStatuses, argIdx, strings.Join(conditions, " AND "))
	args = append(args, f.ExcludeDeclineCode)

	stats := &domain.LimitStatistics{WindowStart: f.Since}
	err := r.pool.QueryRow(ctx, query, args...).Scan(&stats.SuccessCount, &stats.FailedCount, &stats.SuccessAmount)
	if err != nil {
		return nil, fmt.Errorf("window stats: %w", err)
	}
	return stats, nil
}

// successStatuses is the SQL list of domain.SuccessLineage.
var successStatuses = func() string {
	quoted := make([]string, len(domain.SuccessLineage))
	for i, s := range domain.SuccessLineage {
		quoted[i] = "'" + string(s) + "'"
	}
	return strings.Join(quoted, ", ")
}()

// scanTransaction is a helper to scan a single row into a PaymentTransaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.PaymentTransaction, error) {
	t := &domain.PaymentTransaction{}
	err := row.Scan(
		&t.ID, &t.UUID, &t.Type, &t.Status, &t.Amount, &t.Currency, &t.MerchantID, &t.CurrencyWalletID,
		&t.CustomerID, &t.Provider, &t.ProviderID, &t.ReferenceID, &t.DeclineCode, &t.DeclineReason,
		&t.Extra, &t.CheckStatusUntil, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment transaction: %w", err)
	}
	return t, nil
}
