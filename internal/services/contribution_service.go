package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paluwagan/paluwagan-backend/internal/config"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"github.com/paluwagan/paluwagan-backend/pkg/paymongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure ContributionServiceImpl implements ContributionService
var _ ContributionService = (*ContributionServiceImpl)(nil)

// ContributionServiceImpl starts gateway checkouts for the fixed monthly
// contribution. The resulting transaction is recorded later, when the
// gateway's webhook reports the checkout session.
type ContributionServiceImpl struct {
	memberRepo repositories.MemberRepository
	gateway    PaymentGateway
	cfg        *config.Config
}

// NewContributionService creates a new ContributionServiceImpl
func NewContributionService(memberRepo repositories.MemberRepository, gateway PaymentGateway, cfg *config.Config) *ContributionServiceImpl {
	return &ContributionServiceImpl{
		memberRepo: memberRepo,
		gateway:    gateway,
		cfg:        cfg,
	}
}

// Checkout creates a checkout session for a member and returns the redirect URL
func (s *ContributionServiceImpl) Checkout(ctx context.Context, memberID primitive.ObjectID) (string, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", apperrors.New(apperrors.CodeNotFound, "member not found")
	}
	if err != nil {
		slog.Error("Failed to fetch member for checkout", "error", err, "memberId", memberID.Hex())
		return "", apperrors.Wrap(apperrors.CodeStorage, "failed to fetch member", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, paymongo.CheckoutParams{
		Name:       member.FullName(),
		Email:      member.Email,
		MemberID:   member.ID.Hex(),
		Amount:     s.cfg.PayMongo.ContributionAmount,
		SuccessURL: s.cfg.PayMongo.ServerURL + "/dashboard",
		CancelURL:  s.cfg.PayMongo.ServerURL + "/pay",
	})
	if err != nil {
		slog.Error("Failed to create checkout session", "error", err, "memberId", memberID.Hex())
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("Checkout session created", "memberId", memberID.Hex(), "sessionId", session.ID)
	return session.CheckoutURL, nil
}
