package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/internal/core/ports/mocks"
	"payment-hub/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	merchantToken = "merchant-token"
	adminToken    = "admin-token"
)

type testEnv struct {
	router       *gin.Engine
	payment      *mocks.MockPaymentService
	stateMachine *mocks.MockTransactionStateMachine
	dispatcher   *mocks.MockCallbackDispatcher
	ledger       *mocks.MockLedgerService
	limitAdmin   *mocks.MockLimitAdminService
	audit        *mocks.MockAuditService
	merchantID   uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &testEnv{
		payment:      mocks.NewMockPaymentService(ctrl),
		stateMachine: mocks.NewMockTransactionStateMachine(ctrl),
		dispatcher:   mocks.NewMockCallbackDispatcher(ctrl),
		ledger:       mocks.NewMockLedgerService(ctrl),
		limitAdmin:   mocks.NewMockLimitAdminService(ctrl),
		audit:        mocks.NewMockAuditService(ctrl),
		merchantID:   uuid.New(),
	}

	tokens := mocks.NewMockTokenService(ctrl)
	tokens.EXPECT().Validate(merchantToken).Return(&ports.TokenClaims{
		Subject: "shop-1", Role: ports.RoleMerchant, MerchantID: env.merchantID,
	}, nil).AnyTimes()
	tokens.EXPECT().Validate(adminToken).Return(&ports.TokenClaims{
		Subject: "ops@example.com", Role: ports.RoleAdmin,
	}, nil).AnyTimes()
	tokens.EXPECT().Validate(gomock.Any()).Return(nil, errors.New("bad token")).AnyTimes()

	env.router = SetupRouter(RouterDeps{
		PaymentSvc:    env.payment,
		StateMachine:  env.stateMachine,
		Dispatcher:    env.dispatcher,
		Ledger:        env.ledger,
		LimitAdmin:    env.limitAdmin,
		TokenSvc:      tokens,
		CallbackBytes: 64,
		AuditSvc:      env.audit,
		Logger:        zerolog.Nop(),
	})
	return env
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		ErrorCode string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ErrorCode
}

func pendingDeposit(merchantID uuid.UUID) *domain.PaymentTransaction {
	now := time.Now()
	return &domain.PaymentTransaction{
		ID:          7,
		UUID:        uuid.New(),
		Type:        domain.TransactionTypeDeposit,
		Status:      domain.TransactionStatusPending,
		Amount:      decimal.RequireFromString("49.99"),
		Currency:    "USD",
		MerchantID:  merchantID,
		Provider:    "ewallet",
		ReferenceID: "order-1",
		Extra:       domain.Extra{RedirectURL: "https://pay.example.com/r/1"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// --- Merchant endpoints ---

func TestCreateDeposit_Success(t *testing.T) {
	env := newTestEnv(t)
	walletID := uuid.New()
	trx := pendingDeposit(env.merchantID)

	env.payment.EXPECT().CreateDeposit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req ports.PaymentRequest) (*domain.PaymentTransaction, error) {
			assert.Equal(t, env.merchantID, req.MerchantID)
			assert.Equal(t, walletID, req.CurrencyWalletID)
			assert.Equal(t, "order-1", req.ReferenceID)
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("49.99")))
			assert.Equal(t, "en", req.Client.Locale)
			return trx, nil
		})

	w := env.do(http.MethodPost, "/api/v1/deposits", merchantToken, map[string]any{
		"currency_wallet_id": walletID.String(),
		"reference_id":       "order-1",
		"amount":             "49.99",
		"currency":           "USD",
		"locale":             "en",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data struct {
			ID          string `json:"id"`
			Status      string `json:"status"`
			RedirectURL string `json:"redirect_url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, trx.UUID.String(), resp.Data.ID)
	assert.Equal(t, "PENDING", resp.Data.Status)
	assert.Equal(t, "https://pay.example.com/r/1", resp.Data.RedirectURL)
}

func TestCreateDeposit_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/deposits", merchantToken, map[string]any{
		"currency_wallet_id": "not-a-uuid",
		"reference_id":       "order-1",
		"amount":             "10",
		"currency":           "USD",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PAY_002", errorCode(t, w))
}

func TestCreateDeposit_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.payment.EXPECT().CreateDeposit(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrDuplicateTransaction())

	w := env.do(http.MethodPost, "/api/v1/deposits", merchantToken, map[string]any{
		"currency_wallet_id": uuid.NewString(),
		"reference_id":       "order-1",
		"amount":             "10",
		"currency":           "USD",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PAY_003", errorCode(t, w))
}

func TestCreateWithdrawal_PassesDestination(t *testing.T) {
	env := newTestEnv(t)
	trx := pendingDeposit(env.merchantID)
	trx.Type = domain.TransactionTypeWithdrawal

	env.payment.EXPECT().CreateWithdrawal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req ports.PaymentRequest) (*domain.PaymentTransaction, error) {
			assert.Equal(t, "acct_123", req.Destination)
			return trx, nil
		})

	w := env.do(http.MethodPost, "/api/v1/withdrawals", merchantToken, map[string]any{
		"currency_wallet_id": uuid.NewString(),
		"reference_id":       "payout-1",
		"amount":             "10",
		"currency":           "USD",
		"destination":        "acct_123",
	})

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateWithdrawal_MissingDestination(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/withdrawals", merchantToken, map[string]any{
		"currency_wallet_id": uuid.NewString(),
		"reference_id":       "payout-1",
		"amount":             "10",
		"currency":           "USD",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTransaction(t *testing.T) {
	env := newTestEnv(t)
	trx := pendingDeposit(env.merchantID)

	env.payment.EXPECT().GetTransaction(gomock.Any(), env.merchantID, trx.UUID).Return(trx, nil)

	w := env.do(http.MethodGet, "/api/v1/transactions/"+trx.UUID.String(), merchantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/transactions/nope", merchantToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMerchantRoutes_RequireMerchantToken(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/v1/transactions/" + uuid.NewString()

	w := env.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_003", errorCode(t, w))

	w = env.do(http.MethodGet, path, "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTH_004", errorCode(t, w))
}

func TestGetWallet_HidesOtherMerchants(t *testing.T) {
	env := newTestEnv(t)
	own := &domain.CurrencyWallet{ID: uuid.New(), MerchantID: env.merchantID, Currency: "USD"}
	foreign := &domain.CurrencyWallet{ID: uuid.New(), MerchantID: uuid.New(), Currency: "USD"}

	env.ledger.EXPECT().GetWallet(gomock.Any(), own.ID).Return(own, nil)
	env.ledger.EXPECT().GetWallet(gomock.Any(), foreign.ID).Return(foreign, nil)

	w := env.do(http.MethodGet, "/api/v1/wallets/"+own.ID.String(), merchantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/wallets/"+foreign.ID.String(), merchantToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PAY_004", errorCode(t, w))
}

func TestListEntries_Limit(t *testing.T) {
	env := newTestEnv(t)
	wallet := &domain.CurrencyWallet{ID: uuid.New(), MerchantID: env.merchantID, Currency: "USD"}
	base := "/api/v1/wallets/" + wallet.ID.String() + "/entries"

	env.ledger.EXPECT().GetWallet(gomock.Any(), wallet.ID).Return(wallet, nil).Times(3)
	env.ledger.EXPECT().ListEntries(gomock.Any(), wallet.ID, defaultEntriesLimit).Return(nil, nil)
	env.ledger.EXPECT().ListEntries(gomock.Any(), wallet.ID, maxEntriesLimit).Return(nil, nil)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, base, merchantToken, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, base+"?limit=10000", merchantToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, base+"?limit=-1", merchantToken, nil).Code)
}

// --- Callbacks ---

func TestCallback_WritesProviderResponse(t *testing.T) {
	env := newTestEnv(t)

	env.dispatcher.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, raw *domain.RawCallback) (*domain.CallbackResponse, error) {
			assert.Equal(t, "bankwire", raw.Provider)
			assert.Equal(t, http.MethodPost, raw.Method)
			assert.Equal(t, "state=SETTLED", string(raw.Body))
			assert.Equal(t, "1", raw.Query.Get("v"))
			assert.False(t, raw.ReceivedAt.IsZero())
			return &domain.CallbackResponse{StatusCode: http.StatusOK, ContentType: "text/plain", Body: []byte("OK")}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/callbacks/bankwire?v=1", strings.NewReader("state=SETTLED"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
}

func TestCallback_GetAndError(t *testing.T) {
	env := newTestEnv(t)
	env.dispatcher.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInvalidSignature())

	w := env.do(http.MethodGet, "/api/v1/callbacks/ewallet?order_id=1", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SEC_002", errorCode(t, w))
}

func TestCallback_BodyTooLarge(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/callbacks/ewallet", "", strings.Repeat("x", 200))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

// --- Admin endpoints ---

func TestRevert_AuditsAndReverts(t *testing.T) {
	env := newTestEnv(t)
	trx := pendingDeposit(env.merchantID)
	trx.Status = domain.TransactionStatusFailed
	reverted := *trx
	reverted.Status = domain.TransactionStatusSuccess

	env.stateMachine.EXPECT().GetByUUID(gomock.Any(), trx.UUID).Return(trx, nil)
	env.stateMachine.EXPECT().Revert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req ports.RevertRequest) (*domain.PaymentTransaction, error) {
			assert.Equal(t, trx.ID, req.TransactionID)
			assert.Equal(t, domain.TransactionStatusSuccess, req.TargetStatus)
			assert.Nil(t, req.ReapplyStatus)
			assert.Equal(t, "ops@example.com", req.Actor)
			return &reverted, nil
		})
	env.audit.EXPECT().Log(gomock.Any(), gomock.Any()).
		Do(func(_ any, entry *domain.AuditLog) {
			assert.Equal(t, domain.AuditActionRevert, entry.Action)
			assert.Equal(t, trx.UUID.String(), entry.ResourceID)
		})

	w := env.do(http.MethodPost, "/api/v1/admin/transactions/"+trx.UUID.String()+"/revert", adminToken, map[string]any{
		"target_status": "SUCCESS",
		"reason":        "bank confirmed settlement",
	})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRevert_RejectsMerchant(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/admin/transactions/"+uuid.NewString()+"/revert", merchantToken, map[string]any{
		"target_status": "SUCCESS",
		"reason":        "x",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRevert_InvalidTarget(t *testing.T) {
	env := newTestEnv(t)
	env.audit.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	w := env.do(http.MethodPost, "/api/v1/admin/transactions/"+uuid.NewString()+"/revert", adminToken, map[string]any{
		"target_status": "FAILED",
		"reason":        "x",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckStatus(t *testing.T) {
	env := newTestEnv(t)
	trx := pendingDeposit(env.merchantID)
	trx.Status = domain.TransactionStatusSuccess

	env.dispatcher.EXPECT().Reconcile(gomock.Any(), trx.UUID).Return(trx, nil)
	env.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	w := env.do(http.MethodPost, "/api/v1/admin/transactions/"+trx.UUID.String()+"/check-status", adminToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"SUCCESS"`)
}

func TestListAlerts_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()
	env.limitAdmin.EXPECT().ListAlerts(gomock.Any(), id).Return(nil, nil)

	w := env.do(http.MethodGet, "/api/v1/admin/transactions/"+id.String()+"/alerts", adminToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestAcknowledgeAlert(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()
	env.audit.EXPECT().Log(gomock.Any(), gomock.Any())
	env.limitAdmin.EXPECT().AcknowledgeAlert(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, ack domain.AlertAcknowledgement) (*domain.LimitAlert, error) {
			assert.Equal(t, "ops@example.com", ack.Actor)
			assert.Equal(t, "known customer", ack.Note)
			return &domain.LimitAlert{ID: id, Acknowledgements: []domain.AlertAcknowledgement{ack}}, nil
		})

	w := env.do(http.MethodPost, "/api/v1/admin/alerts/"+id.String()+"/ack", adminToken, map[string]any{
		"note": "known customer",
	})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAdjust(t *testing.T) {
	env := newTestEnv(t)
	walletID := uuid.New()
	env.audit.EXPECT().Log(gomock.Any(), gomock.Any())
	env.ledger.EXPECT().Adjust(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req ports.AdjustmentRequest) (*domain.BalanceTransaction, error) {
			assert.Equal(t, walletID, req.CurrencyWalletID)
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(-5)))
			assert.Equal(t, "ops@example.com", req.Actor)
			return &domain.BalanceTransaction{}, nil
		})

	w := env.do(http.MethodPost, "/api/v1/admin/wallets/"+walletID.String()+"/adjustments", adminToken, map[string]any{
		"amount": "-5",
		"reason": "fee correction",
	})

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLimitLifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.New()
	limitID := uuid.New()
	env.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Times(3)

	env.limitAdmin.EXPECT().CreateLimit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, l *domain.Limit) (*domain.Limit, error) {
			assert.Equal(t, owner, l.OwnerID)
			assert.Equal(t, "USD", l.Currency)
			l.ID = limitID
			return l, nil
		})
	env.limitAdmin.EXPECT().UpdateLimit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, l *domain.Limit) (*domain.Limit, error) {
			assert.Equal(t, limitID, l.ID)
			return l, nil
		})
	env.limitAdmin.EXPECT().DeactivateLimit(gomock.Any(), limitID).Return(nil)

	body := map[string]any{
		"scope":      "CUSTOMER",
		"owner_id":   owner.String(),
		"name":       "daily cap",
		"currency":   "usd",
		"period":     "DAY",
		"max_amount": "500",
	}

	w := env.do(http.MethodPost, "/api/v1/admin/limits", adminToken, body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodPut, "/api/v1/admin/limits/"+limitID.String(), adminToken, body)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodDelete, "/api/v1/admin/limits/"+limitID.String(), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Health ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Ping(_ context.Context) error { return s.err }

func TestHealthCheck(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: errors.New("down")}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.Contains(t, w.Body.String(), `"redis":{"status":"unhealthy","error":"down"}`)
}
