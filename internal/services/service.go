package services

import (
	"context"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/pkg/paymongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService defines the interface for the contribution ledger
type LedgerService interface {
	// RecordTransaction durably records a payment attempt. It is idempotent
	// under webhook redelivery: the checkout session id is the key.
	RecordTransaction(ctx context.Context, params RecordTransactionParams) (*models.Transaction, error)

	// ListTransactions returns transactions newest-first, optionally scoped
	// to a member and capped at a limit.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)
}

// StatsService defines the interface for derived contribution statistics.
// None of these operations fail on missing data; an empty ledger yields
// zero-valued results.
type StatsService interface {
	// Summarize aggregates the whole pool, or one member's transactions when
	// memberID is non-nil.
	Summarize(ctx context.Context, memberID *primitive.ObjectID) (*models.ContributionSummary, error)

	// MemberStats returns one member's breakdown joined with display fields.
	// An unknown member yields an "Unknown User" placeholder.
	MemberStats(ctx context.Context, memberID primitive.ObjectID) (*models.MemberStats, error)

	// AllMemberStats returns every contributing member's breakdown sorted by
	// total amount descending.
	AllMemberStats(ctx context.Context) ([]*models.MemberStats, error)

	// MonthlyRollup returns a member's completed contributions grouped by
	// calendar month, ascending.
	MonthlyRollup(ctx context.Context, memberID primitive.ObjectID) ([]*models.MonthlyStat, error)
}

// RecipientService defines the interface for the payout selection engine
type RecipientService interface {
	// SelectRecipient runs the guarded draw for the cycle now belongs to and
	// returns a tagged result. Non-selection outcomes are not errors.
	SelectRecipient(ctx context.Context, now time.Time) (*models.SelectionResult, error)

	// CurrentRecipient returns the latest payout record by receivedAt, or
	// nil when no draw has happened yet.
	CurrentRecipient(ctx context.Context) (*models.Recipient, error)

	// RecipientsByYear returns a year's payout log in draw order.
	RecipientsByYear(ctx context.Context, year int) ([]*models.Recipient, error)

	// NextContributionDeadline computes a member's next draw-day deadline
	// from their most recent contribution.
	NextContributionDeadline(ctx context.Context, memberID primitive.ObjectID, now time.Time) (time.Time, error)
}

// MemberService defines the interface for member roster operations
type MemberService interface {
	GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	GetAllMembers(ctx context.Context) ([]*models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	// DeleteMember removes a member and cascades to their transactions.
	DeleteMember(ctx context.Context, id primitive.ObjectID) error
	GetMemberCount(ctx context.Context) (int64, error)
	RosterStats(ctx context.Context) (*models.RosterStats, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Member, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// ContributionService defines the interface for initiating gateway checkouts
type ContributionService interface {
	// Checkout creates a payment-gateway checkout session for the fixed
	// monthly contribution and returns the redirect URL.
	Checkout(ctx context.Context, memberID primitive.ObjectID) (string, error)
}

// PaymentGateway is the slice of the gateway client the contribution flow
// uses. Satisfied by *paymongo.Client.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params paymongo.CheckoutParams) (*paymongo.CheckoutSession, error)
}
