package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction statuses
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

// Transaction represents one contribution attempt reported by the payment
// gateway. CheckoutSessionID is the gateway's idempotency key and is unique
// across the collection.
type Transaction struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CheckoutSessionID string             `bson:"checkoutSessionId" json:"checkoutSessionId"`
	Amount            float64            `bson:"amount" json:"amount"`
	MemberID          primitive.ObjectID `bson:"member" json:"memberId"`
	Status            string             `bson:"status" json:"status"` // pending, completed, failed
	PaymentMethod     string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Error             string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the transaction reached a final status.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionCompleted || t.Status == TransactionFailed
}
