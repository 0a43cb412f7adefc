package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContributionSummary aggregates the transaction pool, or one member's slice
// of it. Monetary fields are rounded to 2 decimal places.
type ContributionSummary struct {
	TotalAmount       float64 `json:"totalAmount"`
	TotalTransactions int     `json:"totalTransactions"`
	CompletedAmount   float64 `json:"completedAmount"`
	CompletedCount    int     `json:"completedCount"`
	AverageAmount     float64 `json:"averageAmount"`
	MinAmount         float64 `json:"minAmount"`
	MaxAmount         float64 `json:"maxAmount"`
	SuccessRate       float64 `json:"successRate"`
}

// MemberStats is a per-member contribution breakdown joined with the member's
// display fields. Unknown member references yield a placeholder entry rather
// than an error so reporting survives orphaned records.
type MemberStats struct {
	MemberID              primitive.ObjectID `json:"memberId,omitempty"`
	MemberName            string             `json:"memberName"`
	Email                 string             `json:"email"`
	TotalAmount           float64            `json:"totalAmount"`
	TransactionCount      int                `json:"transactionCount"`
	AverageAmount         float64            `json:"averageAmount"`
	LastTransaction       *time.Time         `json:"lastTransaction"`
	CompletedTransactions int                `json:"completedTransactions"`
	FailedTransactions    int                `json:"failedTransactions"`
	PendingTransactions   int                `json:"pendingTransactions"`
	SuccessRate           float64            `json:"successRate"`
}

// MonthlyStat is one row of a member's monthly rollup of completed
// contributions.
type MonthlyStat struct {
	Month       time.Time `json:"month"`
	TotalAmount float64   `json:"totalAmount"`
	Count       int       `json:"count"`
}

// RosterStats summarizes the member roster for the dashboard.
type RosterStats struct {
	TotalMembers          int        `json:"totalMembers"`
	NewestMember          *time.Time `json:"newestMember"`
	OldestMember          *time.Time `json:"oldestMember"`
	Contributors          int        `json:"contributors"`
	ContributorPercentage float64    `json:"contributorPercentage"`
}
