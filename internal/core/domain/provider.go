package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"payment-hub/pkg/money"

	"github.com/google/uuid"
)

// ClientInfo describes the end customer session that started a payment.
type ClientInfo struct {
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Locale    string `json:"locale,omitempty"`
	ReturnURL string `json:"return_url,omitempty"`
}

// InitiationResult is what a controller learned from starting a payment.
type InitiationResult struct {
	ProviderID  string
	RedirectURL string
	// Status is PENDING unless the provider settled synchronously.
	Status        TransactionStatus
	DeclineCode   string
	DeclineReason string
	Fields        map[string]string
}

// PrecisionCurrencyScale is the comparison precision used when none is set:
// provider amounts must match at the currency scale.
const PrecisionCurrencyScale int32 = -1

// Precision pins an amount comparison to n decimal places, e.g.
// Precision(0) for a provider that reports whole units only.
func Precision(n int32) *int32 { return &n }

// ComparePrecision resolves an optional precision. Nil means the currency
// scale, so an unset value never loosens the match.
func ComparePrecision(p *int32) int32 {
	if p == nil {
		return PrecisionCurrencyScale
	}
	return *p
}

// RemoteStatus is the provider-agnostic result of a callback or status check.
type RemoteStatus struct {
	TransactionUUID uuid.UUID
	ProviderID      string
	Status          TransactionStatus
	Amount          *money.Money
	// AmountPrecision is the number of decimal places the provider reports.
	// Nil compares at the currency scale.
	AmountPrecision *int32
	DeclineCode     string
	DeclineReason   string
}

// RawCallback is an inbound provider notification as received over HTTP.
type RawCallback struct {
	Provider   string
	Method     string
	Path       string
	Headers    http.Header
	Query      url.Values
	Body       []byte
	RemoteAddr string
	ReceivedAt time.Time
}

// Fingerprint identifies an exact delivery for replay detection.
func (r *RawCallback) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(r.Provider))
	h.Write([]byte{0})
	h.Write([]byte(r.Query.Encode()))
	h.Write([]byte{0})
	h.Write(r.Body)
	return hex.EncodeToString(h.Sum(nil))
}

// CallbackResponse is the HTTP answer a provider expects.
type CallbackResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// TextResponse builds a plain-text acknowledgement.
func TextResponse(status int, body string) *CallbackResponse {
	return &CallbackResponse{StatusCode: status, ContentType: "text/plain; charset=utf-8", Body: []byte(body)}
}

// CallbackResult holds either a normalized status or a response to send directly.
type CallbackResult struct {
	Status   *RemoteStatus
	Response *CallbackResponse
}

// ProviderError is returned by controllers. Safe failures guarantee no funds
// moved; everything else is treated as an unknown outcome.
type ProviderError struct {
	Provider string
	Safe     bool
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	kind := "unknown"
	if e.Safe {
		kind = "safe"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s provider failure (%s) [%s] %s: %v", e.Provider, kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider failure (%s) [%s] %s", e.Provider, kind, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewSafeProviderError marks an explicit provider rejection.
func NewSafeProviderError(provider, code, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Safe: true, Code: code, Message: message, Err: err}
}

// NewUnknownProviderError marks an ambiguous outcome.
func NewUnknownProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Code: DeclineCodeProviderError, Message: message, Err: err}
}

// AsSafeProviderError returns the safe failure wrapped in err, if any.
func AsSafeProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Safe {
		return pe, true
	}
	return nil, false
}
