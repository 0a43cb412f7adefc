package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipient represents one payout decision. Records are append-only: at most
// one per cycle, and at most one per member within a cycle year.
type Recipient struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MemberID   primitive.ObjectID `bson:"member" json:"memberId"`
	Amount     float64            `bson:"amount" json:"amount"`
	CycleYear  int                `bson:"cycleYear" json:"cycleYear"`
	CycleMonth int                `bson:"cycleMonth" json:"cycleMonth"`
	ReceivedAt time.Time          `bson:"receivedAt" json:"receivedAt"`
}
