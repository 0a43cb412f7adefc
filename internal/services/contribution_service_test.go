package services

import (
	"context"
	"errors"
	"testing"

	"github.com/paluwagan/paluwagan-backend/internal/config"
	"github.com/paluwagan/paluwagan-backend/internal/repositories/memory"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"github.com/paluwagan/paluwagan-backend/pkg/paymongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGateway struct {
	lastParams paymongo.CheckoutParams
	err        error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, params paymongo.CheckoutParams) (*paymongo.CheckoutSession, error) {
	g.lastParams = params
	if g.err != nil {
		return nil, g.err
	}
	return &paymongo.CheckoutSession{ID: "cs_fake", CheckoutURL: "https://checkout.example.com/cs_fake"}, nil
}

func contributionConfig() *config.Config {
	return &config.Config{
		PayMongo: config.PayMongoConfig{
			ContributionAmount: 100000,
			ServerURL:          "https://app.example.com",
		},
	}
}

func TestCheckout(t *testing.T) {
	memberRepo := memory.NewMemberRepository()
	gateway := &fakeGateway{}
	service := NewContributionService(memberRepo, gateway, contributionConfig())

	member := seedMember(t, memberRepo, "Maria", "Santos", "maria@example.com")

	url, err := service.Checkout(context.Background(), member.ID)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if url != "https://checkout.example.com/cs_fake" {
		t.Errorf("checkout url = %q", url)
	}

	if gateway.lastParams.Amount != 100000 {
		t.Errorf("Amount = %d, want the fixed contribution of 100000", gateway.lastParams.Amount)
	}
	if gateway.lastParams.MemberID != member.ID.Hex() {
		t.Errorf("MemberID = %q, want %q", gateway.lastParams.MemberID, member.ID.Hex())
	}
	if gateway.lastParams.Name != "Maria Santos" {
		t.Errorf("Name = %q, want %q", gateway.lastParams.Name, "Maria Santos")
	}
	if gateway.lastParams.SuccessURL != "https://app.example.com/dashboard" {
		t.Errorf("SuccessURL = %q", gateway.lastParams.SuccessURL)
	}
	if gateway.lastParams.CancelURL != "https://app.example.com/pay" {
		t.Errorf("CancelURL = %q", gateway.lastParams.CancelURL)
	}
}

func TestCheckoutUnknownMember(t *testing.T) {
	service := NewContributionService(memory.NewMemberRepository(), &fakeGateway{}, contributionConfig())

	_, err := service.Checkout(context.Background(), primitive.NewObjectID())
	if !apperrors.IsNotFound(err) {
		t.Errorf("got %v, want not-found error", err)
	}
}

func TestCheckoutGatewayFailure(t *testing.T) {
	memberRepo := memory.NewMemberRepository()
	gateway := &fakeGateway{err: errors.New("gateway down")}
	service := NewContributionService(memberRepo, gateway, contributionConfig())

	member := seedMember(t, memberRepo, "Maria", "Santos", "maria@example.com")

	if _, err := service.Checkout(context.Background(), member.ID); err == nil {
		t.Error("Checkout succeeded despite gateway failure")
	}
}
