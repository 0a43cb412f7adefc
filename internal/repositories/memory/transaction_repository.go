// Package memory provides in-memory repository implementations with the same
// uniqueness semantics as the MongoDB implementations. They back the service
// tests and any environment without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionRepository implements repositories.TransactionRepository in memory
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*models.Transaction // keyed by checkoutSessionId
}

// NewTransactionRepository creates an empty in-memory transaction repository
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		transactions: make(map[string]*models.Transaction),
	}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[transaction.CheckoutSessionID]; exists {
		return repositories.ErrDuplicate
	}

	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	clone := *transaction
	r.transactions[transaction.CheckoutSessionID] = &clone
	return nil
}

func (r *TransactionRepository) FindByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transaction, ok := r.transactions[checkoutSessionID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *transaction
	return &clone, nil
}

func (r *TransactionRepository) UpdateStatusIfPending(ctx context.Context, checkoutSessionID, status, errDetail string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	transaction, ok := r.transactions[checkoutSessionID]
	if !ok || transaction.Status != models.TransactionPending {
		return false, nil
	}
	transaction.Status = status
	transaction.Error = errDetail
	transaction.UpdatedAt = time.Now()
	return true, nil
}

func (r *TransactionRepository) FindAll(ctx context.Context, limit int64) ([]*models.Transaction, error) {
	return r.find(func(*models.Transaction) bool { return true }, limit), nil
}

func (r *TransactionRepository) FindByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]*models.Transaction, error) {
	return r.find(func(t *models.Transaction) bool { return t.MemberID == memberID }, limit), nil
}

func (r *TransactionRepository) DeleteByMember(ctx context.Context, memberID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, transaction := range r.transactions {
		if transaction.MemberID == memberID {
			delete(r.transactions, key)
		}
	}
	return nil
}

// Seed inserts a transaction verbatim, preserving its timestamps. Test helper.
func (r *TransactionRepository) Seed(transaction *models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	clone := *transaction
	r.transactions[transaction.CheckoutSessionID] = &clone
}

func (r *TransactionRepository) find(match func(*models.Transaction) bool, limit int64) []*models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Transaction
	for _, transaction := range r.transactions {
		if match(transaction) {
			clone := *transaction
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}
