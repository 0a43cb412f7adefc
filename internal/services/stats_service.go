package services

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure StatsServiceImpl implements StatsService
var _ StatsService = (*StatsServiceImpl)(nil)

const unknownMemberName = "Unknown User"

// StatsServiceImpl computes derived statistics over the transaction ledger.
// Everything is recomputed on read; nothing is cached.
type StatsServiceImpl struct {
	transactionRepo repositories.TransactionRepository
	memberRepo      repositories.MemberRepository
}

// NewStatsService creates a new StatsServiceImpl
func NewStatsService(transactionRepo repositories.TransactionRepository, memberRepo repositories.MemberRepository) *StatsServiceImpl {
	return &StatsServiceImpl{
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
	}
}

// Summarize aggregates all transactions, or one member's when memberID is
// non-nil. Zero transactions yield a zero-valued summary, never an error.
func (s *StatsServiceImpl) Summarize(ctx context.Context, memberID *primitive.ObjectID) (*models.ContributionSummary, error) {
	transactions, err := s.fetch(ctx, memberID)
	if err != nil {
		return nil, err
	}
	summary := summarize(transactions)
	return &summary, nil
}

// MemberStats returns one member's contribution breakdown. A member id with
// no Member record yields an "Unknown User" placeholder so reporting is
// resilient to orphaned references.
func (s *StatsServiceImpl) MemberStats(ctx context.Context, memberID primitive.ObjectID) (*models.MemberStats, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		slog.Error("Failed to look up member for stats", "error", err, "memberId", memberID.Hex())
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to look up member", err)
	}

	transactions, err := s.fetch(ctx, &memberID)
	if err != nil {
		return nil, err
	}
	return buildMemberStats(memberID, member, transactions), nil
}

// AllMemberStats returns every member's breakdown sorted by total amount
// descending. Members without transactions are included with zero stats.
func (s *StatsServiceImpl) AllMemberStats(ctx context.Context) ([]*models.MemberStats, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list members for stats", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list members", err)
	}

	transactions, err := s.fetch(ctx, nil)
	if err != nil {
		return nil, err
	}

	byMember := make(map[primitive.ObjectID][]*models.Transaction)
	for _, transaction := range transactions {
		byMember[transaction.MemberID] = append(byMember[transaction.MemberID], transaction)
	}

	roster := make(map[primitive.ObjectID]*models.Member, len(members))
	for _, member := range members {
		roster[member.ID] = member
	}

	stats := make([]*models.MemberStats, 0, len(members))
	for _, member := range members {
		stats = append(stats, buildMemberStats(member.ID, member, byMember[member.ID]))
	}
	// Orphaned transactions still show up, as Unknown User rows.
	for memberID, memberTransactions := range byMember {
		if _, ok := roster[memberID]; !ok {
			stats = append(stats, buildMemberStats(memberID, nil, memberTransactions))
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalAmount > stats[j].TotalAmount
	})
	return stats, nil
}

// MonthlyRollup groups a member's completed transactions by calendar month,
// ascending. No completed transactions yield an empty slice.
func (s *StatsServiceImpl) MonthlyRollup(ctx context.Context, memberID primitive.ObjectID) ([]*models.MonthlyStat, error) {
	transactions, err := s.fetch(ctx, &memberID)
	if err != nil {
		return nil, err
	}
	return monthlyRollup(transactions), nil
}

func (s *StatsServiceImpl) fetch(ctx context.Context, memberID *primitive.ObjectID) ([]*models.Transaction, error) {
	var (
		transactions []*models.Transaction
		err          error
	)
	if memberID != nil {
		transactions, err = s.transactionRepo.FindByMember(ctx, *memberID, 0)
	} else {
		transactions, err = s.transactionRepo.FindAll(ctx, 0)
	}
	if err != nil {
		slog.Error("Failed to fetch transactions for stats", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch transactions", err)
	}
	return transactions, nil
}

// --- Aggregation functions ---

// summarize computes the pool summary over a transaction list.
func summarize(transactions []*models.Transaction) models.ContributionSummary {
	var summary models.ContributionSummary
	if len(transactions) == 0 {
		return summary
	}

	summary.TotalTransactions = len(transactions)
	summary.MinAmount = transactions[0].Amount
	summary.MaxAmount = transactions[0].Amount
	for _, transaction := range transactions {
		summary.TotalAmount += transaction.Amount
		summary.MinAmount = math.Min(summary.MinAmount, transaction.Amount)
		summary.MaxAmount = math.Max(summary.MaxAmount, transaction.Amount)
		if transaction.Status == models.TransactionCompleted {
			summary.CompletedAmount += transaction.Amount
			summary.CompletedCount++
		}
	}

	summary.AverageAmount = round2(summary.TotalAmount / float64(summary.TotalTransactions))
	summary.TotalAmount = round2(summary.TotalAmount)
	summary.CompletedAmount = round2(summary.CompletedAmount)
	summary.MinAmount = round2(summary.MinAmount)
	summary.MaxAmount = round2(summary.MaxAmount)
	summary.SuccessRate = successRate(summary.CompletedCount, summary.TotalTransactions)
	return summary
}

// buildMemberStats computes one member's breakdown. member may be nil for an
// orphaned or unknown reference.
func buildMemberStats(memberID primitive.ObjectID, member *models.Member, transactions []*models.Transaction) *models.MemberStats {
	stats := &models.MemberStats{
		MemberID:   memberID,
		MemberName: unknownMemberName,
		Email:      "N/A",
	}
	if member != nil {
		stats.MemberName = member.FullName()
		stats.Email = member.Email
	}

	var total float64
	var last time.Time
	for _, transaction := range transactions {
		total += transaction.Amount
		if transaction.CreatedAt.After(last) {
			last = transaction.CreatedAt
		}
		switch transaction.Status {
		case models.TransactionCompleted:
			stats.CompletedTransactions++
		case models.TransactionFailed:
			stats.FailedTransactions++
		case models.TransactionPending:
			stats.PendingTransactions++
		}
	}

	stats.TransactionCount = len(transactions)
	stats.TotalAmount = round2(total)
	if len(transactions) > 0 {
		stats.AverageAmount = round2(total / float64(len(transactions)))
		lastCopy := last
		stats.LastTransaction = &lastCopy
	}
	stats.SuccessRate = successRate(stats.CompletedTransactions, stats.TransactionCount)
	return stats
}

// monthlyRollup groups completed transactions by calendar month, ascending.
func monthlyRollup(transactions []*models.Transaction) []*models.MonthlyStat {
	byMonth := make(map[time.Time]*models.MonthlyStat)
	for _, transaction := range transactions {
		if transaction.Status != models.TransactionCompleted {
			continue
		}
		month := time.Date(transaction.CreatedAt.Year(), transaction.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		stat, ok := byMonth[month]
		if !ok {
			stat = &models.MonthlyStat{Month: month}
			byMonth[month] = stat
		}
		stat.TotalAmount += transaction.Amount
		stat.Count++
	}

	rollup := make([]*models.MonthlyStat, 0, len(byMonth))
	for _, stat := range byMonth {
		stat.TotalAmount = round2(stat.TotalAmount)
		rollup = append(rollup, stat)
	}
	sort.Slice(rollup, func(i, j int) bool {
		return rollup[i].Month.Before(rollup[j].Month)
	})
	return rollup
}

// successRate is completed/total as a percentage, 0 for an empty ledger.
func successRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(completed) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
