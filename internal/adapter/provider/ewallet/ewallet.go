// Package ewallet is the controller for the e-wallet provider: a JSON API
// whose requests and callbacks carry an HMAC-SHA256 X-Signature header.
package ewallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"payment-hub/internal/adapter/provider"
	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Name is the registry key of this controller.
const Name = "ewallet"

const signatureHeader = "X-Signature"

// Config holds the merchant account at the e-wallet.
type Config struct {
	BaseURL     string
	MerchantKey string
	Secret      string
	CallbackURL string
}

// Controller implements ports.PaymentSystemController.
type Controller struct {
	cfg    Config
	client *provider.HTTPClient
	signer ports.SignatureService
}

func New(cfg Config, client *provider.HTTPClient, signer ports.SignatureService) *Controller {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Controller{cfg: cfg, client: client, signer: signer}
}

func (c *Controller) Name() string { return Name }

type paymentRequest struct {
	MerchantKey string `json:"merchant_key"`
	OrderID     string `json:"order_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"callback_url,omitempty"`
	ReturnURL   string `json:"return_url,omitempty"`
	CustomerIP  string `json:"customer_ip,omitempty"`
	Locale      string `json:"locale,omitempty"`
	Wallet      string `json:"wallet,omitempty"`
}

// paymentState is both the API response body and the callback payload.
type paymentState struct {
	OrderID      string `json:"order_id"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
	Amount       string `json:"amount,omitempty"`
	Currency     string `json:"currency,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func (c *Controller) InitiateDeposit(ctx context.Context, trx *domain.PaymentTransaction, client domain.ClientInfo) (*domain.InitiationResult, error) {
	return c.initiate(ctx, "/v1/payments", trx, client)
}

func (c *Controller) InitiateWithdraw(ctx context.Context, trx *domain.PaymentTransaction, client domain.ClientInfo) (*domain.InitiationResult, error) {
	if trx.Extra.Destination == "" {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderDecline, "payout destination missing", nil)
	}
	return c.initiate(ctx, "/v1/payouts", trx, client)
}

func (c *Controller) initiate(ctx context.Context, path string, trx *domain.PaymentTransaction, client domain.ClientInfo) (*domain.InitiationResult, error) {
	body, err := json.Marshal(paymentRequest{
		MerchantKey: c.cfg.MerchantKey,
		OrderID:     trx.UUID.String(),
		Amount:      formatAmount(trx.Money()),
		Currency:    trx.Currency,
		CallbackURL: c.cfg.CallbackURL,
		ReturnURL:   client.ReturnURL,
		CustomerIP:  client.IP,
		Locale:      client.Locale,
		Wallet:      trx.Extra.Destination,
	})
	if err != nil {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderError, "encode request", err)
	}

	state, err := c.call(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	status, ok := mapStatus(state.Status)
	if !ok {
		return nil, domain.NewUnknownProviderError(Name, fmt.Sprintf("unexpected status %q", state.Status), nil)
	}
	return &domain.InitiationResult{
		ProviderID:    state.PaymentID,
		RedirectURL:   state.RedirectURL,
		Status:        status,
		DeclineCode:   state.ErrorCode,
		DeclineReason: state.ErrorMessage,
	}, nil
}

// CheckStatus queries the payment or payout by our order id.
func (c *Controller) CheckStatus(ctx context.Context, trx *domain.PaymentTransaction) (*domain.RemoteStatus, error) {
	path := "/v1/payments/"
	if trx.Type == domain.TransactionTypeWithdrawal {
		path = "/v1/payouts/"
	}
	state, err := c.call(ctx, http.MethodGet, path+url.PathEscape(trx.UUID.String()), nil)
	if err != nil {
		return nil, err
	}
	return toRemoteStatus(state)
}

func (c *Controller) call(ctx context.Context, method, path string, body []byte) (*paymentState, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderError, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-Key", c.cfg.MerchantKey)
	// GET requests sign the path.
	signed := string(body)
	if len(body) == 0 {
		signed = path
	}
	req.Header.Set(signatureHeader, c.signer.Sign(c.cfg.Secret, signed))

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var state paymentState
	decodeErr := json.Unmarshal(resp.Body, &state)
	if resp.StatusCode >= 300 {
		return nil, provider.StatusError(Name, resp, state.ErrorCode, state.ErrorMessage)
	}
	if decodeErr != nil {
		return nil, domain.NewUnknownProviderError(Name, "undecodable response", decodeErr)
	}
	return &state, nil
}

func (c *Controller) ValidateCallbackSignature(_ context.Context, raw *domain.RawCallback) bool {
	sig := raw.Headers.Get(signatureHeader)
	if sig == "" {
		return false
	}
	return c.signer.Verify(c.cfg.Secret, string(raw.Body), sig)
}

func (c *Controller) ParseCallback(_ context.Context, raw *domain.RawCallback) (*domain.CallbackResult, error) {
	var state paymentState
	if err := json.Unmarshal(raw.Body, &state); err != nil {
		return nil, fmt.Errorf("decode ewallet callback: %w", err)
	}
	status, err := toRemoteStatus(&state)
	if err != nil {
		return nil, err
	}
	return &domain.CallbackResult{Status: status}, nil
}

func (c *Controller) BuildCallbackResponse(_ context.Context, _ *domain.RawCallback) *domain.CallbackResponse {
	return &domain.CallbackResponse{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(`{"status":"ok"}`),
	}
}

func toRemoteStatus(state *paymentState) (*domain.RemoteStatus, error) {
	status, ok := mapStatus(state.Status)
	if !ok {
		return nil, fmt.Errorf("unknown ewallet status %q", state.Status)
	}
	rs := &domain.RemoteStatus{
		ProviderID:    state.PaymentID,
		Status:        status,
		DeclineCode:   state.ErrorCode,
		DeclineReason: state.ErrorMessage,
	}
	if id, err := uuid.Parse(state.OrderID); err == nil {
		rs.TransactionUUID = id
	}
	if rs.TransactionUUID == uuid.Nil && rs.ProviderID == "" {
		return nil, fmt.Errorf("ewallet payload identifies no payment")
	}
	if state.Amount != "" {
		amount, err := decimal.NewFromString(state.Amount)
		if err != nil {
			return nil, fmt.Errorf("ewallet amount %q: %w", state.Amount, err)
		}
		rs.Amount = &money.Money{Amount: amount, Currency: strings.ToUpper(state.Currency)}
	}
	return rs, nil
}

func formatAmount(m money.Money) string {
	scale, err := money.Scale(m.Currency)
	if err != nil {
		return m.Amount.String()
	}
	return m.Amount.StringFixed(scale)
}

func mapStatus(s string) (domain.TransactionStatus, bool) {
	switch strings.ToLower(s) {
	case "created", "pending", "processing":
		return domain.TransactionStatusPending, true
	case "success", "completed", "paid":
		return domain.TransactionStatusSuccess, true
	case "failed", "declined", "cancelled", "expired":
		return domain.TransactionStatusFailed, true
	case "refunded":
		return domain.TransactionStatusRefunded, true
	case "chargeback":
		return domain.TransactionStatusChargedBack, true
	}
	return "", false
}
