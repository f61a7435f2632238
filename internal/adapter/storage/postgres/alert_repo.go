package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const alertColumns = `id, customer_limit_id, merchant_limit_id, transaction_uuid, severity,
	declined, reasons, statistics, acknowledgements, created_at`

// AlertRepo implements ports.LimitAlertRepository.
type AlertRepo struct {
	pool Pool
}

// NewAlertRepo creates a new AlertRepo.
func NewAlertRepo(pool Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Create inserts an alert within the transaction that created the payment.
func (r *AlertRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.LimitAlert) error {
	query := `INSERT INTO limit_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		a.ID, a.CustomerLimitID, a.MerchantLimitID, a.TransactionUUID, a.Severity,
		a.Declined, a.Reasons, a.Statistics, a.Acknowledgements, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert limit alert: %w", err)
	}
	return nil
}

// GetByID fetches one alert.
func (r *AlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LimitAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM limit_alerts WHERE id = $1`

	a, err := scanAlert(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get limit alert: %w", err)
	}
	return a, nil
}

// ListByTransaction returns every alert raised for a payment transaction.
func (r *AlertRepo) ListByTransaction(ctx context.Context, trxUUID uuid.UUID) ([]domain.LimitAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM limit_alerts WHERE transaction_uuid = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, trxUUID)
	if err != nil {
		return nil, fmt.Errorf("list limit alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.LimitAlert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan limit alert: %w", err)
		}
		alerts = append(alerts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate limit alerts: %w", err)
	}
	return alerts, nil
}

// AddAcknowledgement appends to the acknowledgement list; existing entries
// are never rewritten.
func (r *AlertRepo) AddAcknowledgement(ctx context.Context, id uuid.UUID, ack domain.AlertAcknowledgement) error {
	payload, err := json.Marshal([]domain.AlertAcknowledgement{ack})
	if err != nil {
		return fmt.Errorf("marshal acknowledgement: %w", err)
	}

	query := `UPDATE limit_alerts SET acknowledgements = acknowledgements || $1::jsonb WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, string(payload), id)
	if err != nil {
		return fmt.Errorf("acknowledge limit alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("limit alert %s: %w", id, ports.ErrNotFound)
	}
	return nil
}

func scanAlert(row pgx.Row) (*domain.LimitAlert, error) {
	a := &domain.LimitAlert{}
	err := row.Scan(
		&a.ID, &a.CustomerLimitID, &a.MerchantLimitID, &a.TransactionUUID, &a.Severity,
		&a.Declined, &a.Reasons, &a.Statistics, &a.Acknowledgements, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
