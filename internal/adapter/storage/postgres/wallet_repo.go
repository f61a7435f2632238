package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, wallet_id, merchant_id, payment_system, currency,
	operational, frozen, pending, created_at, updated_at`

// WalletRepo implements ports.CurrencyWalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new currency wallet.
func (r *WalletRepo) Create(ctx context.Context, w *domain.CurrencyWallet) error {
	query := `INSERT INTO currency_wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.WalletID, w.MerchantID, w.PaymentSystem, w.Currency,
		w.Operational, w.Frozen, w.Pending, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert currency wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CurrencyWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM currency_wallets WHERE id = $1`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get currency wallet by id: %w", err)
	}
	return w, nil
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CurrencyWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM currency_wallets WHERE id = $1 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, lockError("lock currency wallet", err)
	}
	return w, nil
}

// UpdateBalances writes all three tiers within a transaction.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, id uuid.UUID, b domain.Balances) error {
	query := `UPDATE currency_wallets SET operational = $1, frozen = $2, pending = $3, updated_at = NOW() WHERE id = $4`

	tag, err := tx.Exec(ctx, query, b.Operational, b.Frozen, b.Pending, id)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("currency wallet %s: %w", id, ports.ErrNotFound)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.CurrencyWallet, error) {
	w := &domain.CurrencyWallet{}
	err := row.Scan(
		&w.ID, &w.WalletID, &w.MerchantID, &w.PaymentSystem, &w.Currency,
		&w.Operational, &w.Frozen, &w.Pending, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}
