package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment-hub/internal/adapter/provider"
	"payment-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripeapi "github.com/stripe/stripe-go/v72"
)

const webhookSecret = "whsec_test"

func newController(t *testing.T, handler http.HandlerFunc) *Controller {
	t.Helper()
	backend := "http://unused.invalid"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		backend = srv.URL
	}
	return New(Config{APIKey: "sk_test_123", WebhookSecret: webhookSecret, BackendURL: backend},
		provider.NewHTTPClient(Name, time.Second, zerolog.Nop()), zerolog.Nop())
}

func testTrx(typ domain.TransactionType) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID: 1, UUID: uuid.New(), Type: typ, Status: domain.TransactionStatusPending,
		Amount: decimal.RequireFromString("49.99"), Currency: "USD", Provider: Name,
		MerchantID: uuid.New(), ReferenceID: "order-1",
	}
}

func signedCallback(body string) *domain.RawCallback {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, body)))
	header := fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
	return &domain.RawCallback{
		Provider: Name,
		Headers:  http.Header{"Stripe-Signature": []string{header}},
		Body:     []byte(body),
	}
}

func event(typ, object string) string {
	return fmt.Sprintf(`{"id":"evt_1","object":"event","api_version":%q,"type":%q,"data":{"object":%s}}`,
		stripeapi.APIVersion, typ, object)
}

func TestInitiateDeposit(t *testing.T) {
	trx := testTrx(domain.TransactionTypeDeposit)
	c := newController(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, trx.UUID.String(), r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "4999", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, trx.UUID.String(), r.PostForm.Get("metadata[transaction_id]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","amount":4999,"currency":"usd",
			"status":"requires_payment_method","client_secret":"pi_1_secret"}`))
	})

	res, err := c.InitiateDeposit(context.Background(), trx, domain.ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", res.ProviderID)
	assert.Equal(t, domain.TransactionStatusPending, res.Status)
	assert.Equal(t, "pi_1_secret", res.Fields["stripe_client_secret"])
}

func TestInitiateDeposit_Errors(t *testing.T) {
	t.Run("invalid request is safe", func(t *testing.T) {
		c := newController(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"amount_too_small","message":"Amount must be at least 50 cents"}}`))
		})

		_, err := c.InitiateDeposit(context.Background(), testTrx(domain.TransactionTypeDeposit), domain.ClientInfo{})
		pe, safe := domain.AsSafeProviderError(err)
		require.True(t, safe)
		assert.Equal(t, "amount_too_small", pe.Code)
	})

	t.Run("api error is unknown", func(t *testing.T) {
		c := newController(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"boom"}}`))
		})

		_, err := c.InitiateDeposit(context.Background(), testTrx(domain.TransactionTypeDeposit), domain.ClientInfo{})
		require.Error(t, err)
		_, safe := domain.AsSafeProviderError(err)
		assert.False(t, safe)
	})
}

func TestInitiateWithdraw(t *testing.T) {
	trx := testTrx(domain.TransactionTypeWithdrawal)
	trx.Extra.Destination = "acct_123"
	c := newController(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transfers", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "acct_123", r.PostForm.Get("destination"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"tr_1","object":"transfer","amount":4999,"currency":"usd","reversed":false}`))
	})

	res, err := c.InitiateWithdraw(context.Background(), trx, domain.ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, "tr_1", res.ProviderID)
	assert.Equal(t, domain.TransactionStatusSuccess, res.Status)

	trx.Extra.Destination = "not-an-account"
	_, err = c.InitiateWithdraw(context.Background(), trx, domain.ClientInfo{})
	_, safe := domain.AsSafeProviderError(err)
	assert.True(t, safe)
}

func TestCheckStatus(t *testing.T) {
	trx := testTrx(domain.TransactionTypeDeposit)
	pi := "pi_9"
	trx.ProviderID = &pi
	c := newController(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":"pi_9","object":"payment_intent","amount":4999,"currency":"usd","status":"succeeded","metadata":{"transaction_id":%q}}`, trx.UUID)
	})

	st, err := c.CheckStatus(context.Background(), trx)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusSuccess, st.Status)
	assert.Equal(t, trx.UUID, st.TransactionUUID)
	assert.Equal(t, "49.99 USD", st.Amount.String())

	trx.ProviderID = nil
	_, err = c.CheckStatus(context.Background(), trx)
	require.Error(t, err)
}

func TestWebhook_PaymentIntentSucceeded(t *testing.T) {
	c := newController(t, nil)
	trxID := uuid.New()
	raw := signedCallback(event("payment_intent.succeeded",
		fmt.Sprintf(`{"id":"pi_2","object":"payment_intent","amount":1000,"currency":"jpy","status":"succeeded","metadata":{"transaction_id":%q}}`, trxID)))

	require.True(t, c.ValidateCallbackSignature(context.Background(), raw))
	res, err := c.ParseCallback(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, res.Status)
	assert.Equal(t, trxID, res.Status.TransactionUUID)
	assert.Equal(t, domain.TransactionStatusSuccess, res.Status.Status)
	assert.Equal(t, "1000 JPY", res.Status.Amount.String())
}

func TestWebhook_Events(t *testing.T) {
	c := newController(t, nil)

	tests := []struct {
		name       string
		typ        string
		object     string
		wantStatus domain.TransactionStatus
		wantPSPID  string
	}{
		{"intent canceled", "payment_intent.canceled", `{"id":"pi_3","object":"payment_intent","status":"canceled"}`, domain.TransactionStatusFailed, "pi_3"},
		{"attempt failed stays pending", "payment_intent.payment_failed",
			`{"id":"pi_4","object":"payment_intent","status":"requires_payment_method","last_payment_error":{"code":"card_declined","message":"declined"}}`,
			domain.TransactionStatusPending, "pi_4"},
		{"transfer reversed", "transfer.reversed", `{"id":"tr_2","object":"transfer","reversed":true}`, domain.TransactionStatusRefunded, "tr_2"},
		{"dispute", "charge.dispute.created", `{"id":"dp_1","object":"dispute","payment_intent":"pi_5","reason":"fraudulent"}`, domain.TransactionStatusChargedBack, "pi_5"},
		{"dispute won", "charge.dispute.funds_reinstated", `{"id":"dp_1","object":"dispute","payment_intent":"pi_5"}`, domain.TransactionStatusChargedBackReversal, "pi_5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.ParseCallback(context.Background(), signedCallback(event(tt.typ, tt.object)))
			require.NoError(t, err)
			require.NotNil(t, res.Status)
			assert.Equal(t, tt.wantStatus, res.Status.Status)
			assert.Equal(t, tt.wantPSPID, res.Status.ProviderID)
		})
	}
}

func TestWebhook_IgnoredTypeIsAcknowledged(t *testing.T) {
	c := newController(t, nil)
	res, err := c.ParseCallback(context.Background(), signedCallback(event("customer.created", `{"id":"cus_1","object":"customer"}`)))
	require.NoError(t, err)
	assert.Nil(t, res.Status)
	assert.Equal(t, http.StatusOK, res.Response.StatusCode)
}

func TestWebhook_BadSignature(t *testing.T) {
	c := newController(t, nil)
	raw := signedCallback(event("payment_intent.succeeded", `{"id":"pi_2","object":"payment_intent"}`))
	raw.Body = append(raw.Body, ' ')

	assert.False(t, c.ValidateCallbackSignature(context.Background(), raw))
	assert.False(t, c.ValidateCallbackSignature(context.Background(), &domain.RawCallback{Headers: http.Header{}, Body: []byte(`{}`)}))
}
