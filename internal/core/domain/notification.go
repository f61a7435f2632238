package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationState tracks outbox publication.
type NotificationState string

const (
	NotificationStatePending   NotificationState = "PENDING"
	NotificationStatePublished NotificationState = "PUBLISHED"
)

// MerchantNotification is an outbox row written in the same unit of work as
// the status change it announces.
type MerchantNotification struct {
	ID              uuid.UUID         `json:"id"`
	MerchantID      uuid.UUID         `json:"merchant_id"`
	TransactionUUID uuid.UUID         `json:"transaction_id"`
	Status          TransactionStatus `json:"status"`
	Payload         []byte            `json:"payload"`
	State           NotificationState `json:"state"`
	Attempts        int               `json:"attempts"`
	LastError       *string           `json:"last_error,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	PublishedAt     *time.Time        `json:"published_at,omitempty"`
}

// NotificationPayload mirrors the public fields of a transaction.
type NotificationPayload struct {
	EventID       uuid.UUID         `json:"event_id"`
	TransactionID uuid.UUID         `json:"transaction_id"`
	ReferenceID   string            `json:"reference_id"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Amount        string            `json:"amount"`
	Currency      string            `json:"currency"`
	DeclineCode   *string           `json:"decline_code,omitempty"`
	DeclineReason *string           `json:"decline_reason,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewNotificationPayload snapshots the transaction for merchants.
func NewNotificationPayload(eventID uuid.UUID, t *PaymentTransaction) NotificationPayload {
	return NotificationPayload{
		EventID:       eventID,
		TransactionID: t.UUID,
		ReferenceID:   t.ReferenceID,
		Type:          t.Type,
		Status:        t.Status,
		Amount:        t.Amount.String(),
		Currency:      t.Currency,
		DeclineCode:   t.DeclineCode,
		DeclineReason: t.DeclineReason,
		UpdatedAt:     t.UpdatedAt,
	}
}
