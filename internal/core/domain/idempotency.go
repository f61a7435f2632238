package domain

import (
	"github.com/google/uuid"
)

// BuildIdempotencyKey scopes a merchant reference to the transaction type.
func BuildIdempotencyKey(merchantID uuid.UUID, t TransactionType, referenceID string) string {
	return merchantID.String() + ":" + string(t) + ":" + referenceID
}
