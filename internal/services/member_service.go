package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure MemberServiceImpl implements MemberService
var _ MemberService = (*MemberServiceImpl)(nil)

// MemberServiceImpl handles member roster business logic
type MemberServiceImpl struct {
	memberRepo      repositories.MemberRepository
	transactionRepo repositories.TransactionRepository
}

// NewMemberService creates a new MemberServiceImpl
func NewMemberService(memberRepo repositories.MemberRepository, transactionRepo repositories.TransactionRepository) *MemberServiceImpl {
	return &MemberServiceImpl{
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
	}
}

// GetMemberByID retrieves a member by id
func (s *MemberServiceImpl) GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "member not found")
	}
	if err != nil {
		slog.Error("Failed to fetch member", "error", err, "memberId", id.Hex())
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch member", err)
	}
	return member, nil
}

// GetAllMembers retrieves the full roster
func (s *MemberServiceImpl) GetAllMembers(ctx context.Context) ([]*models.Member, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to fetch members", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch members", err)
	}
	return members, nil
}

// UpdateMember updates a member's profile fields
func (s *MemberServiceImpl) UpdateMember(ctx context.Context, member *models.Member) error {
	err := s.memberRepo.Update(ctx, member)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.New(apperrors.CodeNotFound, "member not found")
	}
	if err != nil {
		slog.Error("Failed to update member", "error", err, "memberId", member.ID.Hex())
		return apperrors.Wrap(apperrors.CodeStorage, "failed to update member", err)
	}
	return nil
}

// DeleteMember removes a member and cascades to their transactions
func (s *MemberServiceImpl) DeleteMember(ctx context.Context, id primitive.ObjectID) error {
	err := s.memberRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.New(apperrors.CodeNotFound, "member not found")
	}
	if err != nil {
		slog.Error("Failed to delete member", "error", err, "memberId", id.Hex())
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete member", err)
	}

	if err := s.transactionRepo.DeleteByMember(ctx, id); err != nil {
		slog.Error("Failed to cascade-delete member transactions", "error", err, "memberId", id.Hex())
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete member transactions", err)
	}

	slog.Info("Member deleted", "memberId", id.Hex())
	return nil
}

// GetMemberCount counts the roster
func (s *MemberServiceImpl) GetMemberCount(ctx context.Context) (int64, error) {
	count, err := s.memberRepo.Count(ctx)
	if err != nil {
		slog.Error("Failed to count members", "error", err)
		return 0, apperrors.Wrap(apperrors.CodeStorage, "failed to count members", err)
	}
	return count, nil
}

// RosterStats summarizes the roster: size, registration span, and how many
// members have at least one completed contribution.
func (s *MemberServiceImpl) RosterStats(ctx context.Context) (*models.RosterStats, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to fetch members for roster stats", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch members", err)
	}

	stats := &models.RosterStats{TotalMembers: len(members)}
	if len(members) == 0 {
		return stats, nil
	}

	oldest := members[0].CreatedAt
	newest := members[0].CreatedAt
	for _, member := range members {
		if member.CreatedAt.Before(oldest) {
			oldest = member.CreatedAt
		}
		if member.CreatedAt.After(newest) {
			newest = member.CreatedAt
		}
	}
	stats.OldestMember = &oldest
	stats.NewestMember = &newest

	transactions, err := s.transactionRepo.FindAll(ctx, 0)
	if err != nil {
		slog.Error("Failed to fetch transactions for roster stats", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch transactions", err)
	}

	contributed := make(map[primitive.ObjectID]bool)
	for _, transaction := range transactions {
		if transaction.Status == models.TransactionCompleted {
			contributed[transaction.MemberID] = true
		}
	}
	for _, member := range members {
		if contributed[member.ID] {
			stats.Contributors++
		}
	}
	stats.ContributorPercentage = round2(float64(stats.Contributors) / float64(len(members)) * 100)
	return stats, nil
}
