package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure LedgerServiceImpl implements LedgerService
var _ LedgerService = (*LedgerServiceImpl)(nil)

// RecordTransactionParams carries one payment attempt reported by the gateway
type RecordTransactionParams struct {
	CheckoutSessionID string
	Amount            float64
	MemberID          primitive.ObjectID
	Status            string
	PaymentMethod     string
	Error             string
}

// TransactionFilter scopes ListTransactions
type TransactionFilter struct {
	MemberID *primitive.ObjectID
	Limit    int64
}

// LedgerServiceImpl handles the contribution ledger business logic
type LedgerServiceImpl struct {
	transactionRepo repositories.TransactionRepository
}

// NewLedgerService creates a new LedgerServiceImpl
func NewLedgerService(transactionRepo repositories.TransactionRepository) *LedgerServiceImpl {
	return &LedgerServiceImpl{transactionRepo: transactionRepo}
}

// RecordTransaction inserts a payment attempt keyed by its checkout session
// id. Redelivery of the same payload converges to the stored record; a
// pending record may be completed or failed exactly once; a colliding id with
// a different member or amount is a corruption signal and yields a conflict.
func (s *LedgerServiceImpl) RecordTransaction(ctx context.Context, params RecordTransactionParams) (*models.Transaction, error) {
	if err := validateRecordParams(&params); err != nil {
		return nil, err
	}

	existing, err := s.transactionRepo.FindByCheckoutSessionID(ctx, params.CheckoutSessionID)
	switch {
	case err == nil:
		return s.reconcile(ctx, existing, params)
	case errors.Is(err, repositories.ErrNotFound):
		// fall through to insert
	default:
		slog.Error("Failed to look up transaction", "error", err, "checkoutSessionId", params.CheckoutSessionID)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to look up transaction", err)
	}

	transaction := &models.Transaction{
		CheckoutSessionID: params.CheckoutSessionID,
		Amount:            params.Amount,
		MemberID:          params.MemberID,
		Status:            params.Status,
		PaymentMethod:     params.PaymentMethod,
		Error:             params.Error,
	}

	err = s.transactionRepo.Create(ctx, transaction)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Lost a race with a concurrent redelivery; reconcile against the
		// record that won.
		existing, err = s.transactionRepo.FindByCheckoutSessionID(ctx, params.CheckoutSessionID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to look up transaction after duplicate insert", err)
		}
		return s.reconcile(ctx, existing, params)
	}
	if err != nil {
		slog.Error("Failed to create transaction", "error", err, "checkoutSessionId", params.CheckoutSessionID)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to create transaction", err)
	}

	slog.Info("Transaction recorded", "checkoutSessionId", transaction.CheckoutSessionID,
		"memberId", transaction.MemberID.Hex(), "amount", transaction.Amount, "status", transaction.Status)
	return transaction, nil
}

// ListTransactions returns transactions newest-first
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	var (
		transactions []*models.Transaction
		err          error
	)
	if filter.MemberID != nil {
		transactions, err = s.transactionRepo.FindByMember(ctx, *filter.MemberID, filter.Limit)
	} else {
		transactions, err = s.transactionRepo.FindAll(ctx, filter.Limit)
	}
	if err != nil {
		slog.Error("Failed to list transactions", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list transactions", err)
	}
	return transactions, nil
}

func (s *LedgerServiceImpl) reconcile(ctx context.Context, existing *models.Transaction, params RecordTransactionParams) (*models.Transaction, error) {
	if existing.MemberID != params.MemberID || !amountsEqual(existing.Amount, params.Amount) {
		slog.Error("Checkout session id collision with mismatched payload",
			"checkoutSessionId", params.CheckoutSessionID,
			"storedMemberId", existing.MemberID.Hex(), "incomingMemberId", params.MemberID.Hex(),
			"storedAmount", existing.Amount, "incomingAmount", params.Amount)
		return nil, apperrors.New(apperrors.CodeConflict,
			fmt.Sprintf("checkout session %s already recorded with different payload", params.CheckoutSessionID))
	}

	// Terminal states never change; only pending may advance.
	if existing.Status == models.TransactionPending && isTerminalStatus(params.Status) {
		updated, err := s.transactionRepo.UpdateStatusIfPending(ctx, params.CheckoutSessionID, params.Status, params.Error)
		if err != nil {
			slog.Error("Failed to update transaction status", "error", err, "checkoutSessionId", params.CheckoutSessionID)
			return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to update transaction status", err)
		}
		if updated {
			slog.Info("Transaction settled", "checkoutSessionId", params.CheckoutSessionID, "status", params.Status)
		}
		return s.transactionRepo.FindByCheckoutSessionID(ctx, params.CheckoutSessionID)
	}

	return existing, nil
}

func validateRecordParams(params *RecordTransactionParams) error {
	if params.CheckoutSessionID == "" {
		return apperrors.New(apperrors.CodeValidation, "checkout session id is required")
	}
	if params.MemberID.IsZero() {
		return apperrors.New(apperrors.CodeValidation, "member id is required")
	}
	if params.Amount <= 0 {
		return apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}
	switch params.Status {
	case "":
		params.Status = models.TransactionPending
	case models.TransactionPending, models.TransactionCompleted, models.TransactionFailed:
	default:
		return apperrors.New(apperrors.CodeValidation, "unknown transaction status: "+params.Status)
	}
	return nil
}

func isTerminalStatus(status string) bool {
	return status == models.TransactionCompleted || status == models.TransactionFailed
}

// amountsEqual compares monetary values to the centavo.
func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
