// Package stripe is the card controller backed by the Stripe API. Deposits
// are PaymentIntents, withdrawals are Connect transfers and callbacks are
// signed webhook events.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"payment-hub/internal/adapter/provider"
	"payment-hub/internal/core/domain"
	"payment-hub/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	stripeapi "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"
)

const Name = "stripe"

const (
	signatureHeader = "Stripe-Signature"
	metadataTrxID   = "transaction_id"
)

type Config struct {
	APIKey        string
	WebhookSecret string
	// BackendURL replaces the Stripe API endpoint when set.
	BackendURL string
}

type Controller struct {
	api           *client.API
	webhookSecret string
	log           zerolog.Logger
}

// New builds a controller whose Stripe client sends every request through
// httpClient. Network retries are disabled; reconciliation covers them.
func New(cfg Config, httpClient *provider.HTTPClient, log zerolog.Logger) *Controller {
	log = log.With().Str("provider", Name).Logger()
	backendCfg := &stripeapi.BackendConfig{
		HTTPClient:        httpClient.StdClient(),
		LeveledLogger:     &leveledLogger{log: log},
		MaxNetworkRetries: stripeapi.Int64(0),
	}
	if cfg.BackendURL != "" {
		backendCfg.URL = stripeapi.String(strings.TrimRight(cfg.BackendURL, "/"))
	}
	api := &client.API{}
	api.Init(cfg.APIKey, &stripeapi.Backends{
		API:     stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendCfg),
		Connect: stripeapi.GetBackendWithConfig(stripeapi.ConnectBackend, backendCfg),
		Uploads: stripeapi.GetBackendWithConfig(stripeapi.UploadsBackend, backendCfg),
	})
	return &Controller{api: api, webhookSecret: cfg.WebhookSecret, log: log}
}

func (c *Controller) Name() string { return Name }

func (c *Controller) InitiateDeposit(ctx context.Context, trx *domain.PaymentTransaction, client domain.ClientInfo) (*domain.InitiationResult, error) {
	units, err := trx.Money().MinorUnits()
	if err != nil {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderError, "amount not representable", err)
	}
	params := &stripeapi.PaymentIntentParams{
		Amount:             stripeapi.Int64(units),
		Currency:           stripeapi.String(strings.ToLower(trx.Currency)),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		Description:        stripeapi.String("deposit " + trx.ReferenceID),
	}
	if client.ReturnURL != "" {
		params.ReturnURL = stripeapi.String(client.ReturnURL)
	}
	params.Context = ctx
	params.SetIdempotencyKey(trx.UUID.String())
	params.AddMetadata(metadataTrxID, trx.UUID.String())
	params.AddMetadata("merchant_id", trx.MerchantID.String())

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, classify(err)
	}
	res := &domain.InitiationResult{
		ProviderID: pi.ID,
		Status:     intentStatus(pi.Status),
		Fields:     map[string]string{"stripe_client_secret": pi.ClientSecret},
	}
	if pi.NextAction != nil && pi.NextAction.RedirectToURL != nil {
		res.RedirectURL = pi.NextAction.RedirectToURL.URL
	}
	if pi.LastPaymentError != nil {
		res.DeclineCode = string(pi.LastPaymentError.Code)
		res.DeclineReason = pi.LastPaymentError.Msg
	}
	return res, nil
}

// InitiateWithdraw transfers funds to the connected account in
// Extra.Destination. A created transfer has already moved the money.
func (c *Controller) InitiateWithdraw(ctx context.Context, trx *domain.PaymentTransaction, _ domain.ClientInfo) (*domain.InitiationResult, error) {
	if !strings.HasPrefix(trx.Extra.Destination, "acct_") {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderDecline, "destination must be a connected account", nil)
	}
	units, err := trx.Money().MinorUnits()
	if err != nil {
		return nil, domain.NewSafeProviderError(Name, domain.DeclineCodeProviderError, "amount not representable", err)
	}
	params := &stripeapi.TransferParams{
		Amount:        stripeapi.Int64(units),
		Currency:      stripeapi.String(strings.ToLower(trx.Currency)),
		Destination:   stripeapi.String(trx.Extra.Destination),
		TransferGroup: stripeapi.String(trx.UUID.String()),
	}
	params.Context = ctx
	params.SetIdempotencyKey(trx.UUID.String())
	params.AddMetadata(metadataTrxID, trx.UUID.String())

	tr, err := c.api.Transfers.New(params)
	if err != nil {
		return nil, classify(err)
	}
	return &domain.InitiationResult{ProviderID: tr.ID, Status: domain.TransactionStatusSuccess}, nil
}

func (c *Controller) CheckStatus(ctx context.Context, trx *domain.PaymentTransaction) (*domain.RemoteStatus, error) {
	if trx.ProviderID == nil {
		return nil, domain.NewUnknownProviderError(Name, "transaction has no stripe id yet", nil)
	}
	if trx.Type == domain.TransactionTypeWithdrawal {
		params := &stripeapi.TransferParams{}
		params.Context = ctx
		tr, err := c.api.Transfers.Get(*trx.ProviderID, params)
		if err != nil {
			return nil, classify(err)
		}
		return transferStatus(tr, trx.UUID), nil
	}

	params := &stripeapi.PaymentIntentParams{}
	params.Context = ctx
	pi, err := c.api.PaymentIntents.Get(*trx.ProviderID, params)
	if err != nil {
		return nil, classify(err)
	}
	return intentRemoteStatus(pi)
}

func (c *Controller) ValidateCallbackSignature(_ context.Context, raw *domain.RawCallback) bool {
	_, err := webhook.ConstructEvent(raw.Body, raw.Headers.Get(signatureHeader), c.webhookSecret)
	if err != nil {
		c.log.Debug().Err(err).Msg("stripe webhook signature rejected")
	}
	return err == nil
}

func (c *Controller) ParseCallback(_ context.Context, raw *domain.RawCallback) (*domain.CallbackResult, error) {
	var event stripeapi.Event
	if err := json.Unmarshal(raw.Body, &event); err != nil {
		return nil, fmt.Errorf("decode stripe event: %w", err)
	}
	if event.Data == nil {
		return nil, fmt.Errorf("stripe event %s has no data", event.ID)
	}

	var (
		status *domain.RemoteStatus
		err    error
	)
	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
		var pi stripeapi.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}
		status, err = intentRemoteStatus(&pi)
	case "transfer.reversed":
		var tr stripeapi.Transfer
		if err := json.Unmarshal(event.Data.Raw, &tr); err != nil {
			return nil, fmt.Errorf("decode transfer: %w", err)
		}
		status = transferStatus(&tr, uuid.Nil)
	case "charge.dispute.created", "charge.dispute.funds_reinstated":
		var dispute stripeapi.Dispute
		if err := json.Unmarshal(event.Data.Raw, &dispute); err != nil {
			return nil, fmt.Errorf("decode dispute: %w", err)
		}
		status, err = disputeStatus(event.Type, &dispute)
	default:
		// Stripe retries unacknowledged events, so ignored types still get a 200.
		c.log.Debug().Str("event_type", event.Type).Msg("stripe event ignored")
		return &domain.CallbackResult{Response: c.BuildCallbackResponse(context.Background(), raw)}, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.CallbackResult{Status: status}, nil
}

func (c *Controller) BuildCallbackResponse(_ context.Context, _ *domain.RawCallback) *domain.CallbackResponse {
	return &domain.CallbackResponse{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(`{"received":true}`),
	}
}

func intentStatus(s stripeapi.PaymentIntentStatus) domain.TransactionStatus {
	switch s {
	case stripeapi.PaymentIntentStatusSucceeded:
		return domain.TransactionStatusSuccess
	case stripeapi.PaymentIntentStatusCanceled:
		return domain.TransactionStatusFailed
	}
	return domain.TransactionStatusPending
}

func intentRemoteStatus(pi *stripeapi.PaymentIntent) (*domain.RemoteStatus, error) {
	rs := &domain.RemoteStatus{
		ProviderID:      pi.ID,
		Status:          intentStatus(pi.Status),
		TransactionUUID: metadataUUID(pi.Metadata),
	}
	// A failed attempt returns the intent to requires_payment_method; the
	// customer may retry, so only canceled intents are final failures.
	if pi.LastPaymentError != nil {
		rs.DeclineCode = string(pi.LastPaymentError.Code)
		rs.DeclineReason = pi.LastPaymentError.Msg
	}
	if rs.Status == domain.TransactionStatusSuccess {
		amount, err := money.FromMinorUnits(pi.Amount, strings.ToUpper(string(pi.Currency)))
		if err != nil {
			return nil, fmt.Errorf("payment intent %s amount: %w", pi.ID, err)
		}
		rs.Amount = &amount
	}
	return rs, nil
}

func transferStatus(tr *stripeapi.Transfer, fallback uuid.UUID) *domain.RemoteStatus {
	rs := &domain.RemoteStatus{
		ProviderID:      tr.ID,
		Status:          domain.TransactionStatusSuccess,
		TransactionUUID: metadataUUID(tr.Metadata),
	}
	if rs.TransactionUUID == uuid.Nil {
		rs.TransactionUUID = fallback
	}
	if tr.Reversed {
		rs.Status = domain.TransactionStatusRefunded
	}
	return rs
}

func disputeStatus(eventType string, d *stripeapi.Dispute) (*domain.RemoteStatus, error) {
	if d.PaymentIntent == nil || d.PaymentIntent.ID == "" {
		return nil, fmt.Errorf("dispute %s is not linked to a payment intent", d.ID)
	}
	rs := &domain.RemoteStatus{
		ProviderID:  d.PaymentIntent.ID,
		Status:      domain.TransactionStatusChargedBack,
		DeclineCode: string(d.Reason),
	}
	if eventType == "charge.dispute.funds_reinstated" {
		rs.Status = domain.TransactionStatusChargedBackReversal
	}
	return rs, nil
}

func metadataUUID(md map[string]string) uuid.UUID {
	id, err := uuid.Parse(md[metadataTrxID])
	if err != nil {
		return uuid.Nil
	}
	return id
}

// classify maps Stripe API errors onto provider errors. 4xx answers mean
// Stripe refused the request; everything else may have gone through.
func classify(err error) error {
	var se *stripeapi.Error
	if errors.As(err, &se) && se.HTTPStatusCode >= 400 && se.HTTPStatusCode < 500 {
		code := string(se.Code)
		if se.DeclineCode != "" {
			code = string(se.DeclineCode)
		}
		if code == "" {
			code = domain.DeclineCodeProviderDecline
		}
		return domain.NewSafeProviderError(Name, code, se.Msg, err)
	}
	return domain.NewUnknownProviderError(Name, "stripe request failed", err)
}

// leveledLogger routes stripe-go logging into zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l *leveledLogger) Infof(format string, v ...interface{})  { l.log.Debug().Msgf(format, v...) }
func (l *leveledLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l *leveledLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
