package bankwire

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"payment-hub/internal/adapter/provider"
	"payment-hub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "bw-secret"

func newController(baseURL string) *Controller {
	return New(Config{
		BaseURL:     baseURL,
		AccountID:   "acc-1",
		Secret:      testSecret,
		CallbackURL: "https://hub.example/api/v1/callbacks/bankwire",
	}, provider.NewHTTPClient(Name, time.Second, zerolog.Nop()))
}

func signed(form url.Values) url.Values {
	form.Set("sign", Sign(testSecret, form))
	return form
}

func testTrx(typ domain.TransactionType) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID: 1, UUID: uuid.New(), Type: typ, Status: domain.TransactionStatusPending,
		Amount: decimal.RequireFromString("1200"), Currency: "EUR", Provider: Name,
	}
}

func TestSign_OrderIndependent(t *testing.T) {
	a := url.Values{"b": {"2"}, "a": {"1"}}
	b := url.Values{"a": {"1"}, "b": {"2"}, "sign": {"ignored"}}
	assert.Equal(t, Sign(testSecret, a), Sign(testSecret, b))
	assert.NotEqual(t, Sign(testSecret, a), Sign("other", a))

	assert.True(t, Verify(testSecret, signed(url.Values{"x": {"1"}})))
	assert.False(t, Verify(testSecret, url.Values{"x": {"1"}, "sign": {"zz"}}))
	assert.False(t, Verify(testSecret, url.Values{"x": {"1"}}))
}

func TestInitiateWithdraw(t *testing.T) {
	trx := testTrx(domain.TransactionTypeWithdrawal)
	trx.Extra.Destination = "DE89370400440532013000"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfers", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.True(t, Verify(testSecret, form))
		assert.Equal(t, "out", form.Get("direction"))
		assert.Equal(t, "1200.00", form.Get("amount"))
		assert.Equal(t, trx.Extra.Destination, form.Get("beneficiary"))

		_, _ = w.Write([]byte(signed(url.Values{"transfer_id": {"bw-5"}, "state": {"QUEUED"}}).Encode()))
	}))
	defer srv.Close()

	res, err := newController(srv.URL).InitiateWithdraw(context.Background(), trx, domain.ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, "bw-5", res.ProviderID)
	assert.Equal(t, domain.TransactionStatusPending, res.Status)
}

func TestInitiateWithdraw_SendsCurrencyScale(t *testing.T) {
	trx := testTrx(domain.TransactionTypeWithdrawal)
	trx.Amount = decimal.RequireFromString("12.345")
	trx.Currency = "KWD"
	trx.Extra.Destination = "KW81CBKU0000000000001234560101"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, "12.345", form.Get("amount"))
		assert.Equal(t, "KWD", form.Get("currency"))

		_, _ = w.Write([]byte(signed(url.Values{"transfer_id": {"bw-6"}, "state": {"QUEUED"}}).Encode()))
	}))
	defer srv.Close()

	_, err := newController(srv.URL).InitiateWithdraw(context.Background(), trx, domain.ClientInfo{})
	require.NoError(t, err)

	c := newController("http://unused.invalid")
	raw := &domain.RawCallback{Provider: Name, Body: []byte(signed(url.Values{
		"reference": {trx.UUID.String()}, "transfer_id": {"bw-6"}, "state": {"SETTLED"},
		"amount": {"12.345"}, "currency": {"KWD"},
	}).Encode())}
	res, err := c.ParseCallback(context.Background(), raw)
	require.NoError(t, err)
	assert.Nil(t, res.Status.AmountPrecision)
	assert.True(t, res.Status.Amount.Amount.Equal(trx.Amount))
}

func TestInitiateDeposit_ReturnsInstructions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(signed(url.Values{
			"transfer_id": {"bw-6"}, "state": {"ACCEPTED"}, "iban": {"GB33BUKB20201555555555"}, "payment_reference": {"PH-6"},
		}).Encode()))
	}))
	defer srv.Close()

	res, err := newController(srv.URL).InitiateDeposit(context.Background(), testTrx(domain.TransactionTypeDeposit), domain.ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, "GB33BUKB20201555555555", res.Fields["bankwire_iban"])
	assert.Equal(t, "PH-6", res.Fields["bankwire_payment_reference"])
}

func TestInitiate_Failures(t *testing.T) {
	t.Run("unsigned reply is unknown", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("transfer_id=bw-7&state=SETTLED"))
		}))
		defer srv.Close()

		_, err := newController(srv.URL).InitiateDeposit(context.Background(), testTrx(domain.TransactionTypeDeposit), domain.ClientInfo{})
		require.Error(t, err)
		_, safe := domain.AsSafeProviderError(err)
		assert.False(t, safe)
	})

	t.Run("bad request is safe", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("reason_code=AC01&reason=invalid+account"))
		}))
		defer srv.Close()

		trx := testTrx(domain.TransactionTypeWithdrawal)
		trx.Extra.Destination = "bogus"
		_, err := newController(srv.URL).InitiateWithdraw(context.Background(), trx, domain.ClientInfo{})
		pe, safe := domain.AsSafeProviderError(err)
		require.True(t, safe)
		assert.Equal(t, "AC01", pe.Code)
		assert.Equal(t, "invalid account", pe.Message)
	})
}

func TestCallback(t *testing.T) {
	c := newController("http://unused.invalid")
	trxID := uuid.New()
	body := signed(url.Values{
		"reference": {trxID.String()}, "transfer_id": {"bw-5"}, "state": {"SETTLED"},
		"amount": {"1200.00"}, "currency": {"EUR"},
	}).Encode()
	raw := &domain.RawCallback{Provider: Name, Body: []byte(body)}

	require.True(t, c.ValidateCallbackSignature(context.Background(), raw))
	res, err := c.ParseCallback(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, res.Status)
	assert.Equal(t, trxID, res.Status.TransactionUUID)
	assert.Equal(t, domain.TransactionStatusSuccess, res.Status.Status)
	assert.Nil(t, res.Status.AmountPrecision)
	assert.True(t, res.Status.Amount.Amount.Equal(decimal.NewFromInt(1200)))

	ack := c.BuildCallbackResponse(context.Background(), raw)
	assert.Equal(t, "OK", string(ack.Body))
}

func TestCallback_QueryDelivery(t *testing.T) {
	c := newController("http://unused.invalid")
	raw := &domain.RawCallback{Provider: Name, Query: signed(url.Values{"transfer_id": {"bw-9"}, "state": {"REJECTED"}, "reason_code": {"AM04"}})}

	require.True(t, c.ValidateCallbackSignature(context.Background(), raw))
	res, err := c.ParseCallback(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "bw-9", res.Status.ProviderID)
	assert.Equal(t, domain.TransactionStatusFailed, res.Status.Status)
	assert.Equal(t, "AM04", res.Status.DeclineCode)
}

func TestCallback_PingAnsweredDirectly(t *testing.T) {
	c := newController("http://unused.invalid")
	raw := &domain.RawCallback{Provider: Name, Body: []byte(signed(url.Values{"state": {"PING"}}).Encode())}

	res, err := c.ParseCallback(context.Background(), raw)
	require.NoError(t, err)
	assert.Nil(t, res.Status)
	assert.Equal(t, "PONG", string(res.Response.Body))
}

func TestCallback_TamperedBody(t *testing.T) {
	c := newController("http://unused.invalid")
	form := signed(url.Values{"transfer_id": {"bw-5"}, "state": {"SETTLED"}, "amount": {"10.00"}})
	form.Set("amount", "10000.00")

	assert.False(t, c.ValidateCallbackSignature(context.Background(), &domain.RawCallback{Body: []byte(form.Encode())}))
}

func TestCheckStatus(t *testing.T) {
	trx := testTrx(domain.TransactionTypeDeposit)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfers/status", r.URL.Path)
		assert.True(t, Verify(testSecret, r.URL.Query()))
		assert.Equal(t, trx.UUID.String(), r.URL.Query().Get("reference"))
		_, _ = w.Write([]byte(signed(url.Values{"reference": {trx.UUID.String()}, "state": {"RETURNED"}}).Encode()))
	}))
	defer srv.Close()

	st, err := newController(srv.URL).CheckStatus(context.Background(), trx)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusRefunded, st.Status)
}
