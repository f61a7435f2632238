package service

import (
	"context"
	"errors"
	"testing"
	"time"

	redisstore "payment-hub/internal/adapter/storage/redis"
	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type limitsTestDeps struct {
	engine    *LimitsEngineImpl
	limitRepo *mocks.MockLimitRepository
	trxRepo   *mocks.MockTransactionRepository
	redis     *miniredis.Miniredis
	cache     *redisstore.LimitCache
}

func setupLimitsEngine(t *testing.T) *limitsTestDeps {
	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	d := &limitsTestDeps{
		limitRepo: mocks.NewMockLimitRepository(ctrl),
		trxRepo:   mocks.NewMockTransactionRepository(ctrl),
		redis:     mr,
		cache:     redisstore.NewLimitCache(client),
	}
	d.engine = NewLimitsEngine(d.limitRepo, d.trxRepo, d.cache, time.Minute, newTestLogger())
	return d
}

func ptr[T any](v T) *T { return &v }

func merchantCandidate(merchantID uuid.UUID, amount string) *domain.LimitCandidate {
	return &domain.LimitCandidate{
		TransactionUUID: uuid.New(),
		Type:            domain.TransactionTypeDeposit,
		Amount:          dec(amount),
		Currency:        "USD",
		MerchantID:      merchantID,
	}
}

func TestLimitsEngine_NoLimits(t *testing.T) {
	d := setupLimitsEngine(t)
	merchantID := uuid.New()

	d.limitRepo.EXPECT().ListActive(gomock.Any(), domain.LimitScopeMerchant, merchantID).Return(nil, nil)

	decision := d.engine.Evaluate(context.Background(), merchantCandidate(merchantID, "10"))
	assert.True(t, decision.Checked)
	assert.False(t, decision.Declined)
	assert.Empty(t, decision.Alerts)
}

func TestLimitsEngine_SuccessCountDeclines(t *testing.T) {
	d := setupLimitsEngine(t)
	merchantID := uuid.New()
	limit := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeMerchant, OwnerID: merchantID,
		Period: ptr(domain.LimitPeriodDay), MaxSuccessCount: ptr(int64(3)),
		DeclineOnExceed: true, Active: true,
	}

	d.limitRepo.EXPECT().ListActive(gomock.Any(), domain.LimitScopeMerchant, merchantID).Return([]domain.Limit{limit}, nil)
	d.trxRepo.EXPECT().WindowStats(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f ports.StatsFilter) (*domain.LimitStatistics, error) {
			require.NotNil(t, f.MerchantID)
			assert.Equal(t, merchantID, *f.MerchantID)
			assert.Nil(t, f.CustomerID)
			assert.Equal(t, domain.DeclineCodeLimitExceeded, f.ExcludeDeclineCode)
			assert.False(t, f.Since.IsZero())
			return &domain.LimitStatistics{SuccessCount: 3, SuccessAmount: dec("30")}, nil
		})

	decision := d.engine.Evaluate(context.Background(), merchantCandidate(merchantID, "10"))
	assert.True(t, decision.Checked)
	assert.True(t, decision.Declined)
	require.Len(t, decision.Alerts, 1)
	alert := decision.Alerts[0]
	assert.Equal(t, limit.ID, *alert.MerchantLimitID)
	assert.Nil(t, alert.CustomerLimitID)
	assert.True(t, alert.Statistics.CandidateAmount.Equal(dec("10")))
	assert.Equal(t, int64(3), alert.Statistics.SuccessCount)
}

func TestLimitsEngine_EveryMatchAlertsWithoutEarlyExit(t *testing.T) {
	d := setupLimitsEngine(t)
	merchantID, customerID := uuid.New(), uuid.New()
	customerLimit := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeCustomer, OwnerID: customerID,
		MaxAmount: ptr(dec("50")), DeclineOnExceed: false, IsCritical: true, Active: true,
		Period: ptr(domain.LimitPeriodHour),
	}
	merchantLimit := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeMerchant, OwnerID: merchantID,
		MaxAmount: ptr(dec("80")), DeclineOnExceed: true, Active: true,
		Period: ptr(domain.LimitPeriodHour),
	}
	withdrawalsOnly := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeMerchant, OwnerID: merchantID,
		TransactionType: ptr(domain.TransactionTypeWithdrawal),
		MaxAmount:       ptr(dec("1")), Active: true,
	}

	d.limitRepo.EXPECT().ListActive(gomock.Any(), domain.LimitScopeMerchant, merchantID).
		Return([]domain.Limit{merchantLimit, withdrawalsOnly}, nil)
	d.limitRepo.EXPECT().ListActive(gomock.Any(), domain.LimitScopeCustomer, customerID).
		Return([]domain.Limit{customerLimit}, nil)

	c := merchantCandidate(merchantID, "100")
	c.CustomerID = &customerID
	decision := d.engine.Evaluate(context.Background(), c)

	assert.True(t, decision.Declined)
	require.Len(t, decision.Alerts, 2)
	assert.Equal(t, customerLimit.ID, decision.Alerts[0].LimitID())
	assert.Equal(t, domain.AlertSeverityCritical, decision.Alerts[0].Severity)
	assert.False(t, decision.Alerts[0].Declined)
	assert.Equal(t, merchantLimit.ID, decision.Alerts[1].LimitID())
	assert.True(t, decision.Alerts[1].Declined)
}

func TestLimitsEngine_CachesLimitSetsPerVersion(t *testing.T) {
	d := setupLimitsEngine(t)
	merchantID := uuid.New()
	limit := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeMerchant, OwnerID: merchantID,
		MaxAmount: ptr(dec("5")), Active: true,
	}

	// one load per cache generation
	d.limitRepo.EXPECT().ListActive(gomock.Any(), domain.LimitScopeMerchant, merchantID).
		Return([]domain.Limit{limit}, nil).Times(2)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		decision := d.engine.Evaluate(ctx, merchantCandidate(merchantID, "10"))
		require.Len(t, decision.Alerts, 1)
	}

	_, err := d.cache.Bump(ctx)
	require.NoError(t, err)
	decision := d.engine.Evaluate(ctx, merchantCandidate(merchantID, "10"))
	assert.Len(t, decision.Alerts, 1)
}

func TestLimitsEngine_StatsAlwaysFresh(t *testing.T) {
	d := setupLimitsEngine(t)
	merchantID := uuid.New()
	limit := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeMerchant, OwnerID: merchantID,
		Period: ptr(domain.LimitPeriodDay), MaxTotalAmount: ptr(dec("100")),
		DeclineOnExceed: true, Active: true,
	}

	d.limitRepo.EXPECT().ListActive(gomock.Any(), domain.LimitScopeMerchant, merchantID).Return([]domain.Limit{limit}, nil)
	gomock.InOrder(
		d.trxRepo.EXPECT().WindowStats(gomock.Any(), gomock.Any()).
			Return(&domain.LimitStatistics{SuccessCount: 1, SuccessAmount: dec("50")}, nil),
		d.trxRepo.EXPECT().WindowStats(gomock.Any(), gomock.Any()).
			Return(&domain.LimitStatistics{SuccessCount: 2, SuccessAmount: dec("95")}, nil),
	)

	ctx := context.Background()
	assert.False(t, d.engine.Evaluate(ctx, merchantCandidate(merchantID, "10")).Declined)
	assert.True(t, d.engine.Evaluate(ctx, merchantCandidate(merchantID, "10")).Declined)
}

func TestLimitsEngine_StatsErrorSkipsOnlyThatLimit(t *testing.T) {
	d := setupLimitsEngine(t)
	merchantID := uuid.New()
	historyLimit := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeMerchant, OwnerID: merchantID,
		Period: ptr(domain.LimitPeriodDay), MaxFailedCount: ptr(int64(1)),
		DeclineOnExceed: true, Active: true,
	}
	amountLimit := domain.Limit{
		ID: uuid.New(), Scope: domain.LimitScopeMerchant, OwnerID: merchantID,
		MaxAmount: ptr(dec("5")), Active: true,
	}

	d.limitRepo.EXPECT().ListActive(gomock.Any(), domain.LimitScopeMerchant, merchantID).
		Return([]domain.Limit{historyLimit, amountLimit}, nil)
	d.trxRepo.EXPECT().WindowStats(gomock.Any(), gomock.Any()).Return(nil, errors.New("statement timeout"))

	decision := d.engine.Evaluate(context.Background(), merchantCandidate(merchantID, "10"))
	assert.True(t, decision.Checked)
	assert.False(t, decision.Declined)
	require.Len(t, decision.Alerts, 1)
	assert.Equal(t, amountLimit.ID, decision.Alerts[0].LimitID())
}

func TestLimitsEngine_FailsOpen(t *testing.T) {
	t.Run("cache unavailable", func(t *testing.T) {
		d := setupLimitsEngine(t)
		d.redis.Close()

		decision := d.engine.Evaluate(context.Background(), merchantCandidate(uuid.New(), "10"))
		assert.False(t, decision.Checked)
		assert.False(t, decision.Declined)
	})

	t.Run("limit store unavailable", func(t *testing.T) {
		d := setupLimitsEngine(t)
		d.limitRepo.EXPECT().ListActive(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		decision := d.engine.Evaluate(context.Background(), merchantCandidate(uuid.New(), "10"))
		assert.False(t, decision.Checked)
		assert.False(t, decision.Declined)
	})
}

func TestStatsFilter_CustomerScope(t *testing.T) {
	customerID := uuid.New()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	l := &domain.Limit{
		Scope: domain.LimitScopeCustomer, OwnerID: customerID, Currency: "MXN",
		TransactionType: ptr(domain.TransactionTypeWithdrawal), Period: ptr(domain.LimitPeriodHour),
	}

	f := statsFilter(l, now)
	require.NotNil(t, f.CustomerID)
	assert.Equal(t, customerID, *f.CustomerID)
	assert.Nil(t, f.MerchantID)
	assert.Equal(t, "MXN", f.Currency)
	assert.Equal(t, domain.TransactionTypeWithdrawal, *f.Type)
	assert.Equal(t, now.Add(-time.Hour), f.Since)
}
