package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type limitAdminTestDeps struct {
	svc       *LimitAdminServiceImpl
	limitRepo *mocks.MockLimitRepository
	alertRepo *mocks.MockLimitAlertRepository
	cache     *mocks.MockLimitCache
}

func setupLimitAdmin(t *testing.T) *limitAdminTestDeps {
	ctrl := gomock.NewController(t)
	d := &limitAdminTestDeps{
		limitRepo: mocks.NewMockLimitRepository(ctrl),
		alertRepo: mocks.NewMockLimitAlertRepository(ctrl),
		cache:     mocks.NewMockLimitCache(ctrl),
	}
	d.svc = NewLimitAdminService(d.limitRepo, d.alertRepo, d.cache, newTestLogger())
	return d
}

func validLimit() *domain.Limit {
	return &domain.Limit{
		Scope:           domain.LimitScopeMerchant,
		OwnerID:         uuid.New(),
		Period:          ptr(domain.LimitPeriodDay),
		MaxSuccessCount: ptr(int64(10)),
		DeclineOnExceed: true,
		Active:          true,
	}
}

func TestLimitAdmin_CreateBumpsCache(t *testing.T) {
	d := setupLimitAdmin(t)
	ctx := context.Background()

	d.limitRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.cache.EXPECT().Bump(ctx).Return(int64(2), nil)

	l, err := d.svc.CreateLimit(ctx, validLimit())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.False(t, l.CreatedAt.IsZero())
}

func TestLimitAdmin_CreateRejectsInvalid(t *testing.T) {
	d := setupLimitAdmin(t)

	l := validLimit()
	l.Period = nil
	_, err := d.svc.CreateLimit(context.Background(), l)
	assertAppError(t, err, "LIM_001")

	l = validLimit()
	l.MaxSuccessCount = nil
	_, err = d.svc.CreateLimit(context.Background(), l)
	assertAppError(t, err, "LIM_001")
}

func TestLimitAdmin_BumpFailureDoesNotFailWrite(t *testing.T) {
	d := setupLimitAdmin(t)
	ctx := context.Background()

	d.limitRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.cache.EXPECT().Bump(ctx).Return(int64(0), errors.New("redis down"))

	_, err := d.svc.CreateLimit(ctx, validLimit())
	assert.NoError(t, err)
}

func TestLimitAdmin_Update(t *testing.T) {
	d := setupLimitAdmin(t)
	ctx := context.Background()
	existing := validLimit()
	existing.ID = uuid.New()
	existing.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing", func(t *testing.T) {
		d.limitRepo.EXPECT().GetByID(ctx, existing.ID).Return(nil, nil)
		_, err := d.svc.UpdateLimit(ctx, &domain.Limit{ID: existing.ID})
		assertAppError(t, err, "PAY_004")
	})

	t.Run("keeps created_at", func(t *testing.T) {
		d.limitRepo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		d.limitRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		d.cache.EXPECT().Bump(ctx).Return(int64(3), nil)

		changed := *existing
		changed.CreatedAt = time.Time{}
		changed.MaxSuccessCount = ptr(int64(20))
		l, err := d.svc.UpdateLimit(ctx, &changed)
		require.NoError(t, err)
		assert.Equal(t, existing.CreatedAt, l.CreatedAt)
		assert.Equal(t, int64(20), *l.MaxSuccessCount)
	})
}

func TestLimitAdmin_Deactivate(t *testing.T) {
	d := setupLimitAdmin(t)
	ctx := context.Background()
	l := validLimit()
	l.ID = uuid.New()

	d.limitRepo.EXPECT().GetByID(ctx, l.ID).Return(l, nil)
	d.limitRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, got *domain.Limit) error {
		assert.False(t, got.Active)
		return nil
	})
	d.cache.EXPECT().Bump(ctx).Return(int64(4), nil)
	require.NoError(t, d.svc.DeactivateLimit(ctx, l.ID))

	// already inactive: no write, no bump
	d.limitRepo.EXPECT().GetByID(ctx, l.ID).Return(&domain.Limit{ID: l.ID, Active: false}, nil)
	require.NoError(t, d.svc.DeactivateLimit(ctx, l.ID))
}

func TestLimitAdmin_AcknowledgeAlert(t *testing.T) {
	d := setupLimitAdmin(t)
	ctx := context.Background()
	alertID := uuid.New()
	prior := domain.AlertAcknowledgement{Actor: "first", At: time.Now().Add(-time.Hour)}

	t.Run("actor required", func(t *testing.T) {
		_, err := d.svc.AcknowledgeAlert(ctx, alertID, domain.AlertAcknowledgement{})
		assertAppError(t, err, "PAY_002")
	})

	t.Run("missing alert", func(t *testing.T) {
		d.alertRepo.EXPECT().GetByID(ctx, alertID).Return(nil, nil)
		_, err := d.svc.AcknowledgeAlert(ctx, alertID, domain.AlertAcknowledgement{Actor: "ops"})
		assertAppError(t, err, "PAY_004")
	})

	t.Run("appends", func(t *testing.T) {
		d.alertRepo.EXPECT().GetByID(ctx, alertID).Return(&domain.LimitAlert{
			ID: alertID, Acknowledgements: []domain.AlertAcknowledgement{prior},
		}, nil)
		d.alertRepo.EXPECT().AddAcknowledgement(ctx, alertID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, ack domain.AlertAcknowledgement) error {
				assert.Equal(t, "ops", ack.Actor)
				assert.False(t, ack.At.IsZero())
				return nil
			})

		alert, err := d.svc.AcknowledgeAlert(ctx, alertID, domain.AlertAcknowledgement{Actor: "ops", Note: "checked"})
		require.NoError(t, err)
		require.Len(t, alert.Acknowledgements, 2)
		assert.Equal(t, prior, alert.Acknowledgements[0])
	})
}
