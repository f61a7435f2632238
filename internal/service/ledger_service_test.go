package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"payment-hub/internal/adapter/storage/memory"
	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type ledgerTestDeps struct {
	svc        *LedgerServiceImpl
	walletRepo *mocks.MockCurrencyWalletRepository
	entryRepo  *mocks.MockBalanceTransactionRepository
	transactor *mocks.MockDBTransactor
}

func setupLedgerService(t *testing.T) *ledgerTestDeps {
	ctrl := gomock.NewController(t)
	d := &ledgerTestDeps{
		walletRepo: mocks.NewMockCurrencyWalletRepository(ctrl),
		entryRepo:  mocks.NewMockBalanceTransactionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
	}
	d.svc = NewLedgerService(d.walletRepo, d.entryRepo, d.transactor,
		RetryPolicy{Attempts: 2, Backoff: time.Millisecond}, newTestLogger())
	return d
}

func TestLedgerService_Apply_SettlementConfirmed(t *testing.T) {
	d := setupLedgerService(t)
	ctx := context.Background()
	tx := &mockTx{}
	walletID := uuid.New()
	trxID := int64(7)

	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.CurrencyWallet{
		ID:       walletID,
		Balances: domain.Balances{Operational: dec("200.00"), Frozen: dec("50.00"), Pending: dec("0")},
	}, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, tx, walletID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, b domain.Balances) error {
			assert.True(t, b.Operational.Equal(dec("150.00")))
			assert.True(t, b.Frozen.IsZero())
			return nil
		})
	d.entryRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	entry, err := d.svc.Apply(ctx, tx, ports.LedgerRequest{
		CurrencyWalletID: walletID,
		Event:            domain.EventSettlementConfirmed,
		Amount:           dec("50.00"),
		Initiator:        domain.InitiatorSystem,
		TransactionID:    &trxID,
	})
	require.NoError(t, err)
	assert.True(t, entry.Amount.Equal(dec("-50.00")), "amount is the operational delta")
	assert.True(t, entry.FrozenBefore.Equal(dec("50.00")))
	assert.True(t, entry.FrozenAfter.IsZero())
	assert.True(t, entry.Consistent())
	assert.Equal(t, &trxID, entry.TransactionID)
}

func TestLedgerService_Apply_Compensation(t *testing.T) {
	d := setupLedgerService(t)
	ctx := context.Background()
	tx := &mockTx{}
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.CurrencyWallet{
		ID:       walletID,
		Balances: domain.Balances{Operational: dec("100"), Frozen: dec("0"), Pending: dec("0")},
	}, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, tx, walletID, gomock.Any()).Return(nil)
	d.entryRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	entry, err := d.svc.Apply(ctx, tx, ports.LedgerRequest{
		CurrencyWalletID: walletID,
		Event:            domain.EventCompensation,
		Reverses:         domain.EventOperationConfirmed,
		Amount:           dec("100"),
		Initiator:        domain.InitiatorAdmin,
		Actor:            "ops",
	})
	require.NoError(t, err)
	require.NotNil(t, entry.Reverses)
	assert.Equal(t, domain.EventOperationConfirmed, *entry.Reverses)
	assert.True(t, entry.OperationalAfter.IsZero())
}

func TestLedgerService_Apply_InvalidAmount(t *testing.T) {
	d := setupLedgerService(t)

	_, err := d.svc.Apply(context.Background(), &mockTx{}, ports.LedgerRequest{
		CurrencyWalletID: uuid.New(),
		Event:            domain.EventChargeback,
		Amount:           dec("-1"),
	})
	assertAppError(t, err, "PAY_002")
}

func TestLedgerService_Apply_WalletMissing(t *testing.T) {
	d := setupLedgerService(t)
	ctx := context.Background()
	tx := &mockTx{}
	id := uuid.New()

	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(nil, nil)

	_, err := d.svc.Apply(ctx, tx, ports.LedgerRequest{CurrencyWalletID: id, Event: domain.EventRefund, Amount: dec("1")})
	assertAppError(t, err, "PAY_004")
}

func TestLedgerService_Apply_LockTimeoutIsWrapped(t *testing.T) {
	d := setupLedgerService(t)
	ctx := context.Background()
	tx := &mockTx{}
	id := uuid.New()

	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(nil, fmt.Errorf("lock: %w", ports.ErrLockTimeout))

	_, err := d.svc.Apply(ctx, tx, ports.LedgerRequest{CurrencyWalletID: id, Event: domain.EventRefund, Amount: dec("1")})
	assert.ErrorIs(t, err, ports.ErrLockTimeout, "callers must be able to detect lock timeouts")
}

func TestLedgerService_Adjust_RetriesLockTimeout(t *testing.T) {
	d := setupLedgerService(t)
	ctx := context.Background()
	tx := &mockTx{}
	id := uuid.New()

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil).Times(2)
	gomock.InOrder(
		d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(nil, ports.ErrLockTimeout),
		d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(&domain.CurrencyWallet{ID: id}, nil),
	)
	d.walletRepo.EXPECT().UpdateBalances(ctx, tx, id, gomock.Any()).Return(nil)
	d.entryRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	entry, err := d.svc.Adjust(ctx, ports.AdjustmentRequest{
		CurrencyWalletID: id, Amount: dec("-5.00"), Actor: "ops", Reason: "fee correction",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventManualAdjustment, entry.Type)
	assert.Equal(t, domain.InitiatorAdmin, entry.Initiator)
	assert.True(t, entry.Amount.Equal(dec("-5.00")))
}

func TestLedgerService_Adjust_Validation(t *testing.T) {
	d := setupLedgerService(t)

	_, err := d.svc.Adjust(context.Background(), ports.AdjustmentRequest{CurrencyWalletID: uuid.New(), Amount: decimal.Zero, Actor: "ops", Reason: "x"})
	assertAppError(t, err, "PAY_002")

	_, err = d.svc.Adjust(context.Background(), ports.AdjustmentRequest{CurrencyWalletID: uuid.New(), Amount: dec("1"), Actor: "ops"})
	assertAppError(t, err, "PAY_002")
}

func TestLedgerService_GetWallet_RepoError(t *testing.T) {
	d := setupLedgerService(t)
	id := uuid.New()
	d.walletRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, errors.New("db down"))

	_, err := d.svc.GetWallet(context.Background(), id)
	assertAppError(t, err, "SYS_001")
}

func TestLedgerService_VerifyWallet_AgainstJournal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(time.Second)
	svc := NewLedgerService(store.Wallets(), store.Entries(), store, DefaultRetryPolicy, newTestLogger())

	wallet := &domain.CurrencyWallet{ID: uuid.New(), MerchantID: uuid.New(), Currency: "USD", PaymentSystem: "ewallet"}
	require.NoError(t, store.Wallets().Create(ctx, wallet))

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	for _, ev := range []domain.BalanceEventType{domain.EventOperationPending, domain.EventOperationConfirmed, domain.EventSettlementFromProvider} {
		_, err := svc.Apply(ctx, tx, ports.LedgerRequest{CurrencyWalletID: wallet.ID, Event: ev, Amount: dec("100.00"), Initiator: domain.InitiatorSystem})
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))

	_, err = svc.Adjust(ctx, ports.AdjustmentRequest{CurrencyWalletID: wallet.ID, Amount: dec("-0.01"), Actor: "ops", Reason: "rounding"})
	require.NoError(t, err)

	v, err := svc.VerifyWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.True(t, v.Consistent)
	assert.Equal(t, int64(4), v.Entries)
	assert.Zero(t, v.ChainBreaks)
	assert.True(t, v.Stored.Operational.Equal(dec("99.99")))
	assert.True(t, v.Stored.Pending.IsZero())

	// Tamper with the stored balance outside the ledger.
	tx, _ = store.Begin(ctx)
	require.NoError(t, store.Wallets().UpdateBalances(ctx, tx, wallet.ID, domain.Balances{Operational: dec("1000")}))
	require.NoError(t, tx.Commit(ctx))

	v, err = svc.VerifyWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.False(t, v.Consistent)
	assert.True(t, v.Recomputed.Operational.Equal(dec("99.99")))
}
