package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimit() *domain.Limit {
	now := time.Now().UTC().Truncate(time.Microsecond)
	period := domain.LimitPeriodDay
	maxAmount := decimal.NewFromInt(500)
	count := int64(5)
	return &domain.Limit{
		ID:              uuid.New(),
		Scope:           domain.LimitScopeCustomer,
		OwnerID:         uuid.New(),
		Name:            "daily customer cap",
		Currency:        "USD",
		Period:          &period,
		MaxSuccessCount: &count,
		MaxAmount:       &maxAmount,
		DeclineOnExceed: true,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func limitRows(limits ...*domain.Limit) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "scope", "owner_id", "name", "transaction_type", "currency", "period",
		"max_success_count", "max_failed_count", "min_amount", "max_amount", "max_total_amount",
		"max_decline_ratio", "ratio_min_sample", "decline_on_exceed", "is_critical", "active", "created_at", "updated_at"})
	for _, l := range limits {
		rows.AddRow(l.ID, l.Scope, l.OwnerID, l.Name, l.TransactionType, l.Currency, l.Period,
			l.MaxSuccessCount, l.MaxFailedCount, l.MinAmount, l.MaxAmount, l.MaxTotalAmount,
			l.MaxDeclineRatio, l.RatioMinSample, l.DeclineOnExceed, l.IsCritical, l.Active, l.CreatedAt, l.UpdatedAt)
	}
	return rows
}

func TestLimitRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLimitRepo(mock)
	l := newTestLimit()

	mock.ExpectExec("INSERT INTO limits").
		WithArgs(l.ID, l.Scope, l.OwnerID, l.Name, l.TransactionType, l.Currency, l.Period,
			l.MaxSuccessCount, l.MaxFailedCount, l.MinAmount, l.MaxAmount, l.MaxTotalAmount,
			l.MaxDeclineRatio, l.RatioMinSample, l.DeclineOnExceed, l.IsCritical, l.Active, l.CreatedAt, l.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), l))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLimitRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLimitRepo(mock)
	l := newTestLimit()

	mock.ExpectExec("UPDATE limits SET").
		WithArgs(l.Name, l.TransactionType, l.Currency, l.Period,
			l.MaxSuccessCount, l.MaxFailedCount, l.MinAmount, l.MaxAmount,
			l.MaxTotalAmount, l.MaxDeclineRatio, l.RatioMinSample,
			l.DeclineOnExceed, l.IsCritical, l.Active, l.UpdatedAt, l.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), l)
	assert.True(t, errors.Is(err, ports.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLimitRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLimitRepo(mock)
	l := newTestLimit()

	mock.ExpectQuery("SELECT .+ FROM limits WHERE id").
		WithArgs(l.ID).
		WillReturnRows(limitRows(l))

	got, err := repo.GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.LimitPeriodDay, *got.Period)
	assert.Equal(t, int64(5), *got.MaxSuccessCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLimitRepo_ListActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLimitRepo(mock)
	a := newTestLimit()
	b := newTestLimit()
	b.OwnerID = a.OwnerID

	mock.ExpectQuery("SELECT .+ FROM limits\\s+WHERE scope = \\$1 AND owner_id = \\$2 AND active").
		WithArgs(domain.LimitScopeCustomer, a.OwnerID).
		WillReturnRows(limitRows(a, b))

	limits, err := repo.ListActive(context.Background(), domain.LimitScopeCustomer, a.OwnerID)
	require.NoError(t, err)
	assert.Len(t, limits, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLimitRepo_ListActive_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	mock.ExpectQuery("FROM limits").
		WithArgs(domain.LimitScopeMerchant, owner).
		WillReturnRows(limitRows())

	limits, err := NewLimitRepo(mock).ListActive(context.Background(), domain.LimitScopeMerchant, owner)
	require.NoError(t, err)
	assert.NotNil(t, limits)
	assert.Empty(t, limits)
}
