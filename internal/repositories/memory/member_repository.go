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

// MemberRepository implements repositories.MemberRepository in memory
type MemberRepository struct {
	mu      sync.RWMutex
	members map[primitive.ObjectID]*models.Member
}

// NewMemberRepository creates an empty in-memory member repository
func NewMemberRepository() *MemberRepository {
	return &MemberRepository{
		members: make(map[primitive.ObjectID]*models.Member),
	}
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members {
		if existing.Email == member.Email {
			return repositories.ErrDuplicate
		}
	}

	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.members {
		if member.Email == email {
			clone := *member
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Member, 0, len(r.members))
	for _, member := range r.members {
		clone := *member
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[member.ID]; !ok {
		return repositories.ErrNotFound
	}
	member.UpdatedAt = time.Now()
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.members)), nil
}
