package postgres

import (
	"context"
	"fmt"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NotificationRepo implements ports.NotificationRepository on the
// merchant_notifications outbox table.
type NotificationRepo struct {
	pool Pool
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(pool Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// Create enqueues a notification in the caller's unit of work.
func (r *NotificationRepo) Create(ctx context.Context, tx pgx.Tx, n *domain.MerchantNotification) error {
	query := `INSERT INTO merchant_notifications
		(id, merchant_id, transaction_uuid, status, payload, state, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		n.ID, n.MerchantID, n.TransactionUUID, n.Status, n.Payload, n.State, n.Attempts, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant notification: %w", err)
	}
	return nil
}

// ListUnpublished returns pending notifications oldest first.
func (r *NotificationRepo) ListUnpublished(ctx context.Context, limit int) ([]domain.MerchantNotification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, merchant_id, transaction_uuid, status, payload, state, attempts, last_error, created_at, published_at
		 FROM merchant_notifications
		 WHERE state = 'PENDING'
		 ORDER BY created_at
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unpublished notifications: %w", err)
	}
	defer rows.Close()

	var list []domain.MerchantNotification
	for rows.Next() {
		var n domain.MerchantNotification
		if err := rows.Scan(
			&n.ID, &n.MerchantID, &n.TransactionUUID, &n.Status, &n.Payload, &n.State,
			&n.Attempts, &n.LastError, &n.CreatedAt, &n.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkPublished flags a notification as delivered to the broker.
func (r *NotificationRepo) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE merchant_notifications SET state = 'PUBLISHED', published_at = $1, attempts = attempts + 1, last_error = NULL
		 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("mark notification published: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, ports.ErrNotFound)
	}
	return nil
}

// MarkFailed records a failed publish attempt; the row stays pending.
func (r *NotificationRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE merchant_notifications SET attempts = attempts + 1, last_error = $1 WHERE id = $2`,
		errMsg, id)
	if err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}
	return nil
}
