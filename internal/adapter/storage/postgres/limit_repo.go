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

const limitColumns = `id, scope, owner_id, name, transaction_type, currency, period,
	max_success_count, max_failed_count, min_amount, max_amount, max_total_amount,
	max_decline_ratio, ratio_min_sample, decline_on_exceed, is_critical, active, created_at, updated_at`

// LimitRepo implements ports.LimitRepository.
type LimitRepo struct {
	pool Pool
}

// NewLimitRepo creates a new LimitRepo.
func NewLimitRepo(pool Pool) *LimitRepo {
	return &LimitRepo{pool: pool}
}

// Create inserts a limit rule.
func (r *LimitRepo) Create(ctx context.Context, l *domain.Limit) error {
	query := `INSERT INTO limits (` + limitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.Scope, l.OwnerID, l.Name, l.TransactionType, l.Currency, l.Period,
		l.MaxSuccessCount, l.MaxFailedCount, l.MinAmount, l.MaxAmount, l.MaxTotalAmount,
		l.MaxDeclineRatio, l.RatioMinSample, l.DeclineOnExceed, l.IsCritical, l.Active, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert limit: %w", err)
	}
	return nil
}

// Update replaces every mutable field of a limit. Scope and owner never change.
func (r *LimitRepo) Update(ctx context.Context, l *domain.Limit) error {
	query := `UPDATE limits SET name = $1, transaction_type = $2, currency = $3, period = $4,
		max_success_count = $5, max_failed_count = $6, min_amount = $7, max_amount = $8,
		max_total_amount = $9, max_decline_ratio = $10, ratio_min_sample = $11,
		decline_on_exceed = $12, is_critical = $13, active = $14, updated_at = $15
		WHERE id = $16`

	tag, err := r.pool.Exec(ctx, query,
		l.Name, l.TransactionType, l.Currency, l.Period,
		l.MaxSuccessCount, l.MaxFailedCount, l.MinAmount, l.MaxAmount,
		l.MaxTotalAmount, l.MaxDeclineRatio, l.RatioMinSample,
		l.DeclineOnExceed, l.IsCritical, l.Active, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update limit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("limit %s: %w", l.ID, ports.ErrNotFound)
	}
	return nil
}

// GetByID fetches a limit regardless of its active flag.
func (r *LimitRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Limit, error) {
	query := `SELECT ` + limitColumns + ` FROM limits WHERE id = $1`

	l, err := scanLimit(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get limit: %w", err)
	}
	return l, nil
}

// ListActive returns the active limits owned by one customer or merchant.
func (r *LimitRepo) ListActive(ctx context.Context, scope domain.LimitScope, ownerID uuid.UUID) ([]domain.Limit, error) {
	query := `SELECT ` + limitColumns + ` FROM limits
		WHERE scope = $1 AND owner_id = $2 AND active ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, scope, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active limits: %w", err)
	}
	defer rows.Close()

	limits := []domain.Limit{}
	for rows.Next() {
		l, err := scanLimit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan limit: %w", err)
		}
		limits = append(limits, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate limits: %w", err)
	}
	return limits, nil
}

func scanLimit(row pgx.Row) (*domain.Limit, error) {
	l := &domain.Limit{}
	err := row.Scan(
		&l.ID, &l.Scope, &l.OwnerID, &l.Name, &l.TransactionType, &l.Currency, &l.Period,
		&l.MaxSuccessCount, &l.MaxFailedCount, &l.MinAmount, &l.MaxAmount, &l.MaxTotalAmount,
		&l.MaxDeclineRatio, &l.RatioMinSample, &l.DeclineOnExceed, &l.IsCritical, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}
