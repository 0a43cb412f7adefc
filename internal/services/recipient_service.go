package services

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/cycle"
	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure RecipientServiceImpl implements RecipientService
var _ RecipientService = (*RecipientServiceImpl)(nil)

// RecipientServiceImpl selects one payout winner per cycle. The whole
// fetch-pick-persist sequence runs under a mutex, and the recipients
// collection's unique indexes back the same invariants across processes.
type RecipientServiceImpl struct {
	recipientRepo   repositories.RecipientRepository
	memberRepo      repositories.MemberRepository
	transactionRepo repositories.TransactionRepository
	statsService    StatsService
	clock           cycle.Clock

	mu sync.Mutex
}

// NewRecipientService creates a new RecipientServiceImpl
func NewRecipientService(
	recipientRepo repositories.RecipientRepository,
	memberRepo repositories.MemberRepository,
	transactionRepo repositories.TransactionRepository,
	statsService StatsService,
	clock cycle.Clock,
) *RecipientServiceImpl {
	return &RecipientServiceImpl{
		recipientRepo:   recipientRepo,
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		statsService:    statsService,
		clock:           clock,
	}
}

// SelectRecipient runs the draw for the cycle now belongs to:
// roster minus this year's winners, one uniform pick, one atomic insert
// stamped with the pooled total. Off-day invocations, an exhausted roster,
// and an already-drawn cycle are ordinary outcomes, not errors.
func (s *RecipientServiceImpl) SelectRecipient(ctx context.Context, now time.Time) (*models.SelectionResult, error) {
	if !s.clock.IsSelectionDay(now) {
		return &models.SelectionResult{Outcome: models.OutcomeNotSelectionDay}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.clock.CurrentCycle(now)

	// A drawn cycle is terminal.
	_, err := s.recipientRepo.FindByCycle(ctx, current.Year, current.Month)
	if err == nil {
		slog.Info("Selection skipped, cycle already drawn", "cycleYear", current.Year, "cycleMonth", current.Month)
		return &models.SelectionResult{Outcome: models.OutcomeAlreadyDrawn}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		slog.Error("Failed to check cycle state", "error", err, "cycleYear", current.Year, "cycleMonth", current.Month)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to check cycle state", err)
	}

	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to fetch member roster", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch member roster", err)
	}

	paid, err := s.paidThisYear(ctx, current.Year)
	if err != nil {
		return nil, err
	}

	eligible := make([]*models.Member, 0, len(members))
	for _, member := range members {
		if !paid[member.ID] {
			eligible = append(eligible, member)
		}
	}
	if len(eligible) == 0 {
		slog.Info("Selection skipped, no eligible members", "cycleYear", current.Year, "cycleMonth", current.Month)
		return &models.SelectionResult{Outcome: models.OutcomeNoEligibleMember}, nil
	}

	winner := pickWinner(eligible)

	summary, err := s.statsService.Summarize(ctx, nil)
	if err != nil {
		return nil, err
	}

	recipient := &models.Recipient{
		MemberID:   winner.ID,
		Amount:     summary.TotalAmount,
		CycleYear:  current.Year,
		CycleMonth: current.Month,
		ReceivedAt: now,
	}

	err = s.recipientRepo.Create(ctx, recipient)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Another writer drew this cycle between our check and insert.
		slog.Warn("Selection lost race, cycle already drawn", "cycleYear", current.Year, "cycleMonth", current.Month)
		return &models.SelectionResult{Outcome: models.OutcomeAlreadyDrawn}, nil
	}
	if err != nil {
		slog.Error("Failed to persist recipient", "error", err, "cycleYear", current.Year, "cycleMonth", current.Month)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to persist recipient", err)
	}

	slog.Info("Recipient selected", "memberId", winner.ID.Hex(), "amount", recipient.Amount,
		"cycleYear", current.Year, "cycleMonth", current.Month, "eligible", len(eligible))
	return &models.SelectionResult{Outcome: models.OutcomeSelected, Recipient: recipient}, nil
}

// CurrentRecipient returns the latest payout record, or nil before the first
// draw.
func (s *RecipientServiceImpl) CurrentRecipient(ctx context.Context) (*models.Recipient, error) {
	recipient, err := s.recipientRepo.FindLatest(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.Error("Failed to fetch current recipient", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch current recipient", err)
	}
	return recipient, nil
}

// RecipientsByYear returns a year's payout log in draw order
func (s *RecipientServiceImpl) RecipientsByYear(ctx context.Context, year int) ([]*models.Recipient, error) {
	recipients, err := s.recipientRepo.FindByCycleYear(ctx, year)
	if err != nil {
		slog.Error("Failed to fetch recipients", "error", err, "cycleYear", year)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch recipients", err)
	}
	return recipients, nil
}

// NextContributionDeadline computes a member's next draw-day deadline from
// their most recent contribution, or from now for members yet to contribute.
func (s *RecipientServiceImpl) NextContributionDeadline(ctx context.Context, memberID primitive.ObjectID, now time.Time) (time.Time, error) {
	transactions, err := s.transactionRepo.FindByMember(ctx, memberID, 1)
	if err != nil {
		slog.Error("Failed to fetch last contribution", "error", err, "memberId", memberID.Hex())
		return time.Time{}, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch last contribution", err)
	}

	var last time.Time
	if len(transactions) > 0 {
		last = transactions[0].CreatedAt
	}
	return s.clock.NextContributionDeadline(last, now), nil
}

func (s *RecipientServiceImpl) paidThisYear(ctx context.Context, year int) (map[primitive.ObjectID]bool, error) {
	recipients, err := s.recipientRepo.FindByCycleYear(ctx, year)
	if err != nil {
		slog.Error("Failed to fetch prior recipients", "error", err, "cycleYear", year)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch prior recipients", err)
	}
	paid := make(map[primitive.ObjectID]bool, len(recipients))
	for _, recipient := range recipients {
		paid[recipient.MemberID] = true
	}
	return paid, nil
}

// pickWinner draws one member uniformly at random via Fisher-Yates shuffle.
func pickWinner(eligible []*models.Member) *models.Member {
	shuffled := make([]*models.Member, len(eligible))
	copy(shuffled, eligible)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[0]
}
