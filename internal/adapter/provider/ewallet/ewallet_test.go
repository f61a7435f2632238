package ewallet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment-hub/internal/adapter/provider"
	"payment-hub/internal/core/domain"
	"payment-hub/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "ew-secret"

func newController(baseURL string) *Controller {
	return New(Config{
		BaseURL:     baseURL,
		MerchantKey: "mk-1",
		Secret:      testSecret,
		CallbackURL: "https://hub.example/api/v1/callbacks/ewallet",
	}, provider.NewHTTPClient(Name, time.Second, zerolog.Nop()), service.NewHMACSignatureService())
}

func testTrx(typ domain.TransactionType) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID: 1, UUID: uuid.New(), Type: typ, Status: domain.TransactionStatusPending,
		Amount: decimal.RequireFromString("25.5"), Currency: "USD", Provider: Name,
	}
}

func TestInitiateDeposit(t *testing.T) {
	trx := testTrx(domain.TransactionTypeDeposit)
	signer := service.NewHMACSignatureService()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.True(t, signer.Verify(testSecret, string(body), r.Header.Get("X-Signature")))

		var req paymentRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, trx.UUID.String(), req.OrderID)
		assert.Equal(t, "25.50", req.Amount)
		assert.Equal(t, "198.51.100.4", req.CustomerIP)

		_ = json.NewEncoder(w).Encode(paymentState{
			OrderID: req.OrderID, PaymentID: "ew-77", Status: "pending", RedirectURL: "https://ew.example/pay/ew-77",
		})
	}))
	defer srv.Close()

	res, err := newController(srv.URL).InitiateDeposit(context.Background(), trx, domain.ClientInfo{IP: "198.51.100.4"})
	require.NoError(t, err)
	assert.Equal(t, "ew-77", res.ProviderID)
	assert.Equal(t, domain.TransactionStatusPending, res.Status)
	assert.Equal(t, "https://ew.example/pay/ew-77", res.RedirectURL)
}

func TestInitiate_Failures(t *testing.T) {
	t.Run("rejection is safe", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error_code":"LIMIT","error_message":"wallet limit reached"}`))
		}))
		defer srv.Close()

		_, err := newController(srv.URL).InitiateDeposit(context.Background(), testTrx(domain.TransactionTypeDeposit), domain.ClientInfo{})
		pe, safe := domain.AsSafeProviderError(err)
		require.True(t, safe)
		assert.Equal(t, "LIMIT", pe.Code)
		assert.Equal(t, "wallet limit reached", pe.Message)
	})

	t.Run("server error is unknown", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newController(srv.URL).InitiateDeposit(context.Background(), testTrx(domain.TransactionTypeDeposit), domain.ClientInfo{})
		require.Error(t, err)
		_, safe := domain.AsSafeProviderError(err)
		assert.False(t, safe)
	})

	t.Run("withdrawal without destination", func(t *testing.T) {
		_, err := newController("http://unused.invalid").InitiateWithdraw(context.Background(), testTrx(domain.TransactionTypeWithdrawal), domain.ClientInfo{})
		_, safe := domain.AsSafeProviderError(err)
		assert.True(t, safe)
	})
}

func TestInitiateWithdraw_SettledSynchronously(t *testing.T) {
	trx := testTrx(domain.TransactionTypeWithdrawal)
	trx.Extra.Destination = "wallet-991"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payouts", r.URL.Path)
		var req paymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wallet-991", req.Wallet)
		_ = json.NewEncoder(w).Encode(paymentState{OrderID: req.OrderID, PaymentID: "po-1", Status: "completed"})
	}))
	defer srv.Close()

	res, err := newController(srv.URL).InitiateWithdraw(context.Background(), trx, domain.ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusSuccess, res.Status)
}

func TestCallback(t *testing.T) {
	c := newController("http://unused.invalid")
	trxID := uuid.New()
	body := []byte(`{"order_id":"` + trxID.String() + `","payment_id":"ew-77","status":"success","amount":"25.50","currency":"usd"}`)
	raw := &domain.RawCallback{
		Provider: Name,
		Headers:  http.Header{"X-Signature": []string{service.NewHMACSignatureService().Sign(testSecret, string(body))}},
		Body:     body,
	}

	assert.True(t, c.ValidateCallbackSignature(context.Background(), raw))

	res, err := c.ParseCallback(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, res.Status)
	assert.Equal(t, trxID, res.Status.TransactionUUID)
	assert.Equal(t, "ew-77", res.Status.ProviderID)
	assert.Equal(t, domain.TransactionStatusSuccess, res.Status.Status)
	assert.Equal(t, "25.50 USD", res.Status.Amount.String())

	ack := c.BuildCallbackResponse(context.Background(), raw)
	assert.Equal(t, http.StatusOK, ack.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(ack.Body))
}

func TestCallback_Rejected(t *testing.T) {
	c := newController("http://unused.invalid")
	body := []byte(`{"order_id":"x","status":"success"}`)

	assert.False(t, c.ValidateCallbackSignature(context.Background(), &domain.RawCallback{Headers: http.Header{}, Body: body}))
	assert.False(t, c.ValidateCallbackSignature(context.Background(), &domain.RawCallback{
		Headers: http.Header{"X-Signature": []string{service.NewHMACSignatureService().Sign("other", string(body))}},
		Body:    body,
	}))

	_, err := c.ParseCallback(context.Background(), &domain.RawCallback{Body: []byte(`{"order_id":"` + uuid.NewString() + `","status":"weird"}`)})
	require.Error(t, err)
	_, err = c.ParseCallback(context.Background(), &domain.RawCallback{Body: []byte(`{"status":"success"}`)})
	require.Error(t, err)
	_, err = c.ParseCallback(context.Background(), &domain.RawCallback{Body: []byte(`not json`)})
	require.Error(t, err)
}

func TestCheckStatus(t *testing.T) {
	trx := testTrx(domain.TransactionTypeWithdrawal)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payouts/"+trx.UUID.String(), r.URL.Path)
		_ = json.NewEncoder(w).Encode(paymentState{
			OrderID: trx.UUID.String(), PaymentID: "po-2", Status: "declined", ErrorCode: "NSF",
		})
	}))
	defer srv.Close()

	st, err := newController(srv.URL).CheckStatus(context.Background(), trx)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, st.Status)
	assert.Equal(t, "NSF", st.DeclineCode)
	assert.Nil(t, st.Amount)
}
