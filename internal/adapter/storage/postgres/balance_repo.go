package postgres

import (
	"context"
	"fmt"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const balanceColumns = `id, currency_wallet_id, type, reverses, amount,
	operational_before, operational_after, frozen_before, frozen_after, pending_before, pending_after,
	initiator, actor, transaction_id, transaction_uuid, description, created_at`

// BalanceRepo implements ports.BalanceTransactionRepository. Rows are never
// updated or deleted.
type BalanceRepo struct {
	pool Pool
}

// NewBalanceRepo creates a new BalanceRepo.
func NewBalanceRepo(pool Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

// Create appends a journal entry within a database transaction.
func (r *BalanceRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.BalanceTransaction) error {
	query := `INSERT INTO balance_transactions (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.CurrencyWalletID, e.Type, e.Reverses, e.Amount,
		e.OperationalBefore, e.OperationalAfter, e.FrozenBefore, e.FrozenAfter, e.PendingBefore, e.PendingAfter,
		e.Initiator, e.Actor, e.TransactionID, e.TransactionUUID, e.Description, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert balance transaction: %w", err)
	}
	return nil
}

// ListByWallet returns the newest entries first. limit <= 0 returns the whole journal.
func (r *BalanceRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.BalanceTransaction, error) {
	query := `SELECT ` + balanceColumns + ` FROM balance_transactions
		WHERE currency_wallet_id = $1 ORDER BY seq DESC`
	args := []any{walletID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.list(ctx, "list wallet entries", query, args...)
}

// ListByTransaction returns a payment transaction's entries in journal order.
func (r *BalanceRepo) ListByTransaction(ctx context.Context, trxID int64) ([]domain.BalanceTransaction, error) {
	query := `SELECT ` + balanceColumns + ` FROM balance_transactions
		WHERE transaction_id = $1 ORDER BY seq`
	return r.list(ctx, "list transaction entries", query, trxID)
}

// Totals recomputes the wallet tiers from the journal.
func (r *BalanceRepo) Totals(ctx context.Context, walletID uuid.UUID) (*ports.LedgerTotals, error) {
	query := `SELECT
		COALESCE(SUM(amount), 0),
		COALESCE(SUM(frozen_after - frozen_before), 0),
		COALESCE(SUM(pending_after - pending_before), 0),
		COUNT(*)
		FROM balance_transactions WHERE currency_wallet_id = $1`

	t := &ports.LedgerTotals{}
	err := r.pool.QueryRow(ctx, query, walletID).Scan(&t.Operational, &t.Frozen, &t.Pending, &t.Entries)
	if err != nil {
		return nil, fmt.Errorf("ledger totals: %w", err)
	}
	return t, nil
}

func (r *BalanceRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.BalanceTransaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []domain.BalanceTransaction
	for rows.Next() {
		var e domain.BalanceTransaction
		if err := rows.Scan(
			&e.ID, &e.CurrencyWalletID, &e.Type, &e.Reverses, &e.Amount,
			&e.OperationalBefore, &e.OperationalAfter, &e.FrozenBefore, &e.FrozenAfter, &e.PendingBefore, &e.PendingAfter,
			&e.Initiator, &e.Actor, &e.TransactionID, &e.TransactionUUID, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return entries, nil
}
