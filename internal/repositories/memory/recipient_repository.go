package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipientRepository implements repositories.RecipientRepository in memory
type RecipientRepository struct {
	mu         sync.RWMutex
	recipients []*models.Recipient
}

// NewRecipientRepository creates an empty in-memory recipient repository
func NewRecipientRepository() *RecipientRepository {
	return &RecipientRepository{}
}

func (r *RecipientRepository) Create(ctx context.Context, recipient *models.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.recipients {
		if existing.CycleYear == recipient.CycleYear && existing.CycleMonth == recipient.CycleMonth {
			return repositories.ErrDuplicate
		}
		if existing.CycleYear == recipient.CycleYear && existing.MemberID == recipient.MemberID {
			return repositories.ErrDuplicate
		}
	}

	if recipient.ID.IsZero() {
		recipient.ID = primitive.NewObjectID()
	}
	clone := *recipient
	r.recipients = append(r.recipients, &clone)
	return nil
}

func (r *RecipientRepository) FindByCycleYear(ctx context.Context, year int) ([]*models.Recipient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Recipient
	for _, recipient := range r.recipients {
		if recipient.CycleYear == year {
			clone := *recipient
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out, nil
}

func (r *RecipientRepository) FindByCycle(ctx context.Context, year, month int) (*models.Recipient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, recipient := range r.recipients {
		if recipient.CycleYear == year && recipient.CycleMonth == month {
			clone := *recipient
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *RecipientRepository) FindLatest(ctx context.Context) (*models.Recipient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *models.Recipient
	for _, recipient := range r.recipients {
		if latest == nil || recipient.ReceivedAt.After(latest.ReceivedAt) {
			latest = recipient
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	clone := *latest
	return &clone, nil
}
