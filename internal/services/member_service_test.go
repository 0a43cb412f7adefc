package services

import (
	"context"
	"testing"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories/memory"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetMemberByIDNotFound(t *testing.T) {
	service := NewMemberService(memory.NewMemberRepository(), memory.NewTransactionRepository())

	_, err := service.GetMemberByID(context.Background(), primitive.NewObjectID())
	if !apperrors.IsNotFound(err) {
		t.Errorf("got %v, want not-found error", err)
	}
}

func TestDeleteMemberCascadesToTransactions(t *testing.T) {
	memberRepo := memory.NewMemberRepository()
	transactionRepo := memory.NewTransactionRepository()
	service := NewMemberService(memberRepo, transactionRepo)

	member := seedMember(t, memberRepo, "Maria", "Santos", "maria@example.com")
	other := seedMember(t, memberRepo, "Jose", "Reyes", "jose@example.com")

	now := time.Now()
	transactionRepo.Seed(&models.Transaction{CheckoutSessionID: "cs_member", Amount: 1000, MemberID: member.ID,
		Status: models.TransactionCompleted, CreatedAt: now})
	transactionRepo.Seed(&models.Transaction{CheckoutSessionID: "cs_other", Amount: 1000, MemberID: other.ID,
		Status: models.TransactionCompleted, CreatedAt: now})

	if err := service.DeleteMember(context.Background(), member.ID); err != nil {
		t.Fatalf("DeleteMember failed: %v", err)
	}

	if _, err := memberRepo.FindByID(context.Background(), member.ID); err == nil {
		t.Error("member still exists after deletion")
	}

	remaining, err := transactionRepo.FindAll(context.Background(), 0)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].MemberID != other.ID {
		t.Errorf("cascade left %d transactions, want only the other member's", len(remaining))
	}
}

func TestDeleteMemberNotFound(t *testing.T) {
	service := NewMemberService(memory.NewMemberRepository(), memory.NewTransactionRepository())

	err := service.DeleteMember(context.Background(), primitive.NewObjectID())
	if !apperrors.IsNotFound(err) {
		t.Errorf("got %v, want not-found error", err)
	}
}

func TestRosterStats(t *testing.T) {
	memberRepo := memory.NewMemberRepository()
	transactionRepo := memory.NewTransactionRepository()
	service := NewMemberService(memberRepo, transactionRepo)

	empty, err := service.RosterStats(context.Background())
	if err != nil {
		t.Fatalf("RosterStats failed: %v", err)
	}
	if empty.TotalMembers != 0 || empty.Contributors != 0 {
		t.Errorf("empty roster stats = %+v, want zero values", empty)
	}

	contributor := seedMember(t, memberRepo, "Maria", "Santos", "maria@example.com")
	pendingOnly := seedMember(t, memberRepo, "Jose", "Reyes", "jose@example.com")
	seedMember(t, memberRepo, "Ana", "Cruz", "ana@example.com")

	now := time.Now()
	transactionRepo.Seed(&models.Transaction{CheckoutSessionID: "cs_done", Amount: 1000, MemberID: contributor.ID,
		Status: models.TransactionCompleted, CreatedAt: now})
	// A pending contribution does not make a contributor.
	transactionRepo.Seed(&models.Transaction{CheckoutSessionID: "cs_pending", Amount: 1000, MemberID: pendingOnly.ID,
		Status: models.TransactionPending, CreatedAt: now})

	stats, err := service.RosterStats(context.Background())
	if err != nil {
		t.Fatalf("RosterStats failed: %v", err)
	}
	if stats.TotalMembers != 3 {
		t.Errorf("TotalMembers = %d, want 3", stats.TotalMembers)
	}
	if stats.Contributors != 1 {
		t.Errorf("Contributors = %d, want 1", stats.Contributors)
	}
	if !approxEqual(stats.ContributorPercentage, 33.33) {
		t.Errorf("ContributorPercentage = %v, want 33.33", stats.ContributorPercentage)
	}
	if stats.OldestMember == nil || stats.NewestMember == nil {
		t.Error("registration span is missing")
	}
}
