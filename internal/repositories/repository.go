package repositories

import (
	"context"
	"errors"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors shared by all repository implementations so the service
// layer never depends on driver error types.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// TransactionRepository defines the interface for contribution ledger storage.
// The backing collection is unique on checkoutSessionId.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*models.Transaction, error)
	// UpdateStatusIfPending sets the status (and optional error detail) of a
	// still-pending transaction. It reports whether a document was updated;
	// terminal documents are left untouched.
	UpdateStatusIfPending(ctx context.Context, checkoutSessionID, status, errDetail string) (bool, error)
	// FindAll returns transactions newest-first. A limit of 0 means no limit.
	FindAll(ctx context.Context, limit int64) ([]*models.Transaction, error)
	// FindByMember returns a member's transactions newest-first.
	FindByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]*models.Transaction, error)
	DeleteByMember(ctx context.Context, memberID primitive.ObjectID) error
}

// RecipientRepository defines the interface for payout record storage. The
// backing collection is unique on (cycleYear, cycleMonth) and on
// (cycleYear, member), which enforces one winner per cycle and no repeat
// winners within a year even across processes.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *models.Recipient) error
	FindByCycleYear(ctx context.Context, year int) ([]*models.Recipient, error)
	FindByCycle(ctx context.Context, year, month int) (*models.Recipient, error)
	// FindLatest returns the most recent recipient by receivedAt.
	FindLatest(ctx context.Context) (*models.Recipient, error)
}

// MemberRepository defines the interface for member roster storage.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindAll(ctx context.Context) ([]*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
