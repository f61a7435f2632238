package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// outboxAlertAttempts is the attempt count after which a stuck notification
// is escalated.
const outboxAlertAttempts = 5

// OutboxServiceImpl writes merchant notifications next to the status change
// that caused them and relays them to the broker. It implements both
// ports.NotificationOutbox and ports.OutboxRelay.
type OutboxServiceImpl struct {
	repo      ports.NotificationRepository
	publisher ports.NotificationPublisher
	log       zerolog.Logger
	now       func() time.Time
}

// NewOutboxService creates a new OutboxServiceImpl. publisher may be nil in
// processes that only enqueue.
func NewOutboxService(repo ports.NotificationRepository, publisher ports.NotificationPublisher, log zerolog.Logger) *OutboxServiceImpl {
	return &OutboxServiceImpl{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Enqueue stores one notification inside tx.
func (s *OutboxServiceImpl) Enqueue(ctx context.Context, tx pgx.Tx, trx *domain.PaymentTransaction) error {
	id := uuid.New()
	payload, err := json.Marshal(domain.NewNotificationPayload(id, trx))
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshal notification: %w", err))
	}
	n := &domain.MerchantNotification{
		ID:              id,
		MerchantID:      trx.MerchantID,
		TransactionUUID: trx.UUID,
		Status:          trx.Status,
		Payload:         payload,
		State:           domain.NotificationStatePending,
		CreatedAt:       s.now(),
	}
	if err := s.repo.Create(ctx, tx, n); err != nil {
		return apperror.InternalError(fmt.Errorf("enqueue notification: %w", err))
	}
	return nil
}

// RelayOnce publishes up to batch pending notifications in creation order
// and returns how many were published. The batch stops at the first publish
// failure so a merchant never sees a later status before an earlier one.
func (s *OutboxServiceImpl) RelayOnce(ctx context.Context, batch int) (int, error) {
	if s.publisher == nil {
		return 0, fmt.Errorf("outbox relay: no publisher configured")
	}
	pending, err := s.repo.ListUnpublished(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("list unpublished notifications: %w", err)
	}

	published := 0
	for i := range pending {
		n := &pending[i]
		if err := s.publisher.Publish(ctx, n.MerchantID.String(), n.Payload); err != nil {
			s.recordFailure(ctx, n, err)
			return published, fmt.Errorf("publish notification %s: %w", n.ID, err)
		}
		if err := s.repo.MarkPublished(ctx, n.ID, s.now()); err != nil {
			// Published but not marked: it goes out again next run.
			return published, fmt.Errorf("mark notification %s published: %w", n.ID, err)
		}
		published++
		s.log.Debug().
			Str("notification_id", n.ID.String()).
			Str("transaction_id", n.TransactionUUID.String()).
			Str("status", string(n.Status)).
			Msg("notification published")
	}
	if published > 0 {
		s.log.Info().Int("published", published).Msg("outbox relayed")
	}
	return published, nil
}

func (s *OutboxServiceImpl) recordFailure(ctx context.Context, n *domain.MerchantNotification, cause error) {
	if err := s.repo.MarkFailed(ctx, n.ID, cause.Error()); err != nil {
		s.log.Error().Err(err).Str("notification_id", n.ID.String()).Msg("failed to record publish failure")
	}
	attempts := n.Attempts + 1
	if attempts >= outboxAlertAttempts {
		logger.Alert(s.log, logger.AlertOutboxPublish).
			Err(cause).
			Str("notification_id", n.ID.String()).
			Str("transaction_id", n.TransactionUUID.String()).
			Int("attempts", attempts).
			Msg("merchant notification cannot be published")
		return
	}
	s.log.Warn().Err(cause).
		Str("notification_id", n.ID.String()).
		Int("attempts", attempts).
		Msg("notification publish failed")
}
