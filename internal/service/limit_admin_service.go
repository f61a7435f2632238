package service

import (
	"context"
	"fmt"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LimitAdminServiceImpl implements ports.LimitAdminService. Every write bumps
// the limits cache version.
type LimitAdminServiceImpl struct {
	limitRepo ports.LimitRepository
	alertRepo ports.LimitAlertRepository
	cache     ports.LimitCache
	log       zerolog.Logger
	now       func() time.Time
}

func NewLimitAdminService(
	limitRepo ports.LimitRepository,
	alertRepo ports.LimitAlertRepository,
	cache ports.LimitCache,
	log zerolog.Logger,
) *LimitAdminServiceImpl {
	return &LimitAdminServiceImpl{
		limitRepo: limitRepo,
		alertRepo: alertRepo,
		cache:     cache,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *LimitAdminServiceImpl) CreateLimit(ctx context.Context, l *domain.Limit) (*domain.Limit, error) {
	if err := l.Validate(); err != nil {
		return nil, apperror.ErrInvalidLimit(err)
	}
	now := s.now()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = now
	l.UpdatedAt = now
	if err := s.limitRepo.Create(ctx, l); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create limit: %w", err))
	}
	s.invalidate(ctx, l.ID, "created")
	return l, nil
}

func (s *LimitAdminServiceImpl) UpdateLimit(ctx context.Context, l *domain.Limit) (*domain.Limit, error) {
	existing, err := s.getLimit(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, apperror.ErrInvalidLimit(err)
	}
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = s.now()
	if err := s.limitRepo.Update(ctx, l); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update limit: %w", err))
	}
	s.invalidate(ctx, l.ID, "updated")
	return l, nil
}

// DeactivateLimit keeps the row so existing alerts still resolve it.
func (s *LimitAdminServiceImpl) DeactivateLimit(ctx context.Context, id uuid.UUID) error {
	l, err := s.getLimit(ctx, id)
	if err != nil {
		return err
	}
	if !l.Active {
		return nil
	}
	l.Active = false
	l.UpdatedAt = s.now()
	if err := s.limitRepo.Update(ctx, l); err != nil {
		return apperror.InternalError(fmt.Errorf("deactivate limit: %w", err))
	}
	s.invalidate(ctx, id, "deactivated")
	return nil
}

func (s *LimitAdminServiceImpl) ListAlerts(ctx context.Context, trxUUID uuid.UUID) ([]domain.LimitAlert, error) {
	alerts, err := s.alertRepo.ListByTransaction(ctx, trxUUID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list alerts: %w", err))
	}
	return alerts, nil
}

// AcknowledgeAlert appends an acknowledgement; earlier ones are never changed.
func (s *LimitAdminServiceImpl) AcknowledgeAlert(ctx context.Context, id uuid.UUID, ack domain.AlertAcknowledgement) (*domain.LimitAlert, error) {
	if ack.Actor == "" {
		return nil, apperror.Validation("acknowledging actor is required")
	}
	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get alert: %w", err))
	}
	if alert == nil {
		return nil, apperror.ErrNotFound("limit alert")
	}
	if ack.At.IsZero() {
		ack.At = s.now()
	}
	if err := s.alertRepo.AddAcknowledgement(ctx, id, ack); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("acknowledge alert: %w", err))
	}
	alert.Acknowledgements = append(alert.Acknowledgements, ack)
	return alert, nil
}

func (s *LimitAdminServiceImpl) getLimit(ctx context.Context, id uuid.UUID) (*domain.Limit, error) {
	l, err := s.limitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get limit: %w", err))
	}
	if l == nil {
		return nil, apperror.ErrNotFound("limit")
	}
	return l, nil
}

// invalidate bumps the cache version. A failed bump leaves readers on the old
// generation until its keys expire.
func (s *LimitAdminServiceImpl) invalidate(ctx context.Context, id uuid.UUID, change string) {
	version, err := s.cache.Bump(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("limit_id", id.String()).Msg("limits cache version bump failed, stale until TTL")
		return
	}
	s.log.Info().
		Str("limit_id", id.String()).
		Str("change", change).
		Int64("cache_version", version).
		Msg("limit configuration changed")
}
