// Package bankwire is the controller for the bank transfer provider. It
// speaks application/x-www-form-urlencoded in both directions and signs
// every message with HMAC-SHA3-256 over the sorted fields.
package bankwire

import (
	"context"
	"crypto/hmac"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"payment-hub/internal/adapter/provider"
	"payment-hub/internal/core/domain"
	"payment-hub/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"
)

const Name = "bankwire"

const (
	fieldSign  = "sign"
	statePing  = "PING"
	formHeader = "application/x-www-form-urlencoded"
)

type Config struct {
	BaseURL     string
	AccountID   string
	Secret      string
	CallbackURL string
}

type Controller struct {
	cfg    Config
	client *provider.HTTPClient
}

func New(cfg Config, client *provider.HTTPClient) *Controller {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Controller{cfg: cfg, client: client}
}

func (c *Controller) Name() string { return Name }

func (c *Controller) InitiateDeposit(ctx context.Context, trx *domain.PaymentTransaction, _ domain.ClientInfo) (*domain.InitiationResult, error) {
	return c.initiate(ctx, trx, "in", "")
}

func (c *Controller) InitiateWithdraw(ctx context.Context, trx *domain.PaymentTransaction, _ domain.ClientInfo) (*domain.InitiationResult, error) {
	if trx.Extra.Destination == "" {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderDecline, "beneficiary account missing", nil)
	}
	return c.initiate(ctx, trx, "out", trx.Extra.Destination)
}

func (c *Controller) initiate(ctx context.Context, trx *domain.PaymentTransaction, direction, beneficiary string) (*domain.InitiationResult, error) {
	form := url.Values{
		"account_id":   {c.cfg.AccountID},
		"reference":    {trx.UUID.String()},
		"direction":    {direction},
		"amount":       {formatAmount(trx.Money())},
		"currency":     {trx.Currency},
		"callback_url": {c.cfg.CallbackURL},
	}
	if beneficiary != "" {
		form.Set("beneficiary", beneficiary)
	}
	form.Set(fieldSign, Sign(c.cfg.Secret, form))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/transfers", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderError, "build request", err)
	}
	req.Header.Set("Content-Type", formHeader)

	reply, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	status, ok := mapState(reply.Get("state"))
	if !ok {
		return nil, domain.NewUnknownProviderError(Name, fmt.Sprintf("unexpected state %q", reply.Get("state")), nil)
	}
	return &domain.InitiationResult{
		ProviderID:    reply.Get("transfer_id"),
		RedirectURL:   reply.Get("payment_url"),
		Status:        status,
		DeclineCode:   reply.Get("reason_code"),
		DeclineReason: reply.Get("reason"),
		Fields:        optionalFields(reply, "iban", "payment_reference"),
	}, nil
}

func (c *Controller) CheckStatus(ctx context.Context, trx *domain.PaymentTransaction) (*domain.RemoteStatus, error) {
	q := url.Values{"account_id": {c.cfg.AccountID}, "reference": {trx.UUID.String()}}
	q.Set(fieldSign, Sign(c.cfg.Secret, q))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/transfers/status?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderError, "build request", err)
	}
	reply, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	return toRemoteStatus(reply)
}

// send performs req and verifies the signature of the form reply.
func (c *Controller) send(ctx context.Context, req *http.Request) (url.Values, error) {
	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	reply, parseErr := url.ParseQuery(string(resp.Body))
	if resp.StatusCode >= 300 {
		return nil, provider.StatusError(Name, resp, reply.Get("reason_code"), reply.Get("reason"))
	}
	if parseErr != nil {
		return nil, domain.NewUnknownProviderError(Name, "undecodable response", parseErr)
	}
	if !Verify(c.cfg.Secret, reply) {
		return nil, domain.NewUnknownProviderError(Name, "response signature mismatch", nil)
	}
	return reply, nil
}

func (c *Controller) ValidateCallbackSignature(_ context.Context, raw *domain.RawCallback) bool {
	form, err := callbackForm(raw)
	if err != nil {
		return false
	}
	return Verify(c.cfg.Secret, form)
}

func (c *Controller) ParseCallback(_ context.Context, raw *domain.RawCallback) (*domain.CallbackResult, error) {
	form, err := callbackForm(raw)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(form.Get("state"), statePing) {
		return &domain.CallbackResult{Response: domain.TextResponse(http.StatusOK, "PONG")}, nil
	}
	status, err := toRemoteStatus(form)
	if err != nil {
		return nil, err
	}
	return &domain.CallbackResult{Status: status}, nil
}

func (c *Controller) BuildCallbackResponse(_ context.Context, _ *domain.RawCallback) *domain.CallbackResponse {
	return domain.TextResponse(http.StatusOK, "OK")
}

// callbackForm reads the fields from the body, or from the query string for
// GET deliveries.
func callbackForm(raw *domain.RawCallback) (url.Values, error) {
	if len(raw.Body) == 0 {
		return raw.Query, nil
	}
	form, err := url.ParseQuery(string(raw.Body))
	if err != nil {
		return nil, fmt.Errorf("decode bankwire form: %w", err)
	}
	return form, nil
}

func toRemoteStatus(form url.Values) (*domain.RemoteStatus, error) {
	status, ok := mapState(form.Get("state"))
	if !ok {
		return nil, fmt.Errorf("unknown bankwire state %q", form.Get("state"))
	}
	rs := &domain.RemoteStatus{
		ProviderID:    form.Get("transfer_id"),
		Status:        status,
		DeclineCode:   form.Get("reason_code"),
		DeclineReason: form.Get("reason"),
	}
	if id, err := uuid.Parse(form.Get("reference")); err == nil {
		rs.TransactionUUID = id
	}
	if rs.TransactionUUID == uuid.Nil && rs.ProviderID == "" {
		return nil, fmt.Errorf("bankwire message identifies no transfer")
	}
	if a := form.Get("amount"); a != "" {
		amount, err := decimal.NewFromString(a)
		if err != nil {
			return nil, fmt.Errorf("bankwire amount %q: %w", a, err)
		}
		rs.Amount = &money.Money{Amount: amount, Currency: strings.ToUpper(form.Get("currency"))}
	}
	return rs, nil
}

func mapState(s string) (domain.TransactionStatus, bool) {
	switch strings.ToUpper(s) {
	case "QUEUED", "ACCEPTED", "IN_PROGRESS":
		return domain.TransactionStatusPending, true
	case "SETTLED":
		return domain.TransactionStatusSuccess, true
	case "REJECTED", "CANCELLED":
		return domain.TransactionStatusFailed, true
	case "RETURNED":
		return domain.TransactionStatusRefunded, true
	case "RECALLED":
		return domain.TransactionStatusChargedBack, true
	}
	return "", false
}

func optionalFields(form url.Values, keys ...string) map[string]string {
	var out map[string]string
	for _, k := range keys {
		if v := form.Get(k); v != "" {
			if out == nil {
				out = make(map[string]string, len(keys))
			}
			out["bankwire_"+k] = v
		}
	}
	return out
}

// Sign returns the hex HMAC-SHA3-256 of the canonical form: keys sorted,
// "sign" excluded, pairs joined as k=v with '&'.
func Sign(secret string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		if k != fieldSign {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	mac := hmac.New(sha3.New256, []byte(secret))
	for i, k := range keys {
		if i > 0 {
			mac.Write([]byte{'&'})
		}
		mac.Write([]byte(k + "=" + form.Get(k)))
	}
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the "sign" field of form in constant time.
func Verify(secret string, form url.Values) bool {
	got, err := hex.DecodeString(form.Get(fieldSign))
	if err != nil || len(got) == 0 {
		return false
	}
	want, _ := hex.DecodeString(Sign(secret, form))
	return hmac.Equal(want, got)
}

// formatAmount renders m at its currency's minor-unit scale.
func formatAmount(m money.Money) string {
	scale, err := money.Scale(m.Currency)
	if err != nil {
		return m.Amount.String()
	}
	return m.Amount.StringFixed(scale)
}
