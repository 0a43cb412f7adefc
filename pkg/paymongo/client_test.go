package paymongo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCheckoutSession(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody checkoutRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data": {"id": "cs_123", "attributes": {"checkout_url": "https://checkout.paymongo.com/cs_123"}}}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_secret", server.URL)
	session, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		Name:       "Maria Santos",
		Email:      "maria@example.com",
		MemberID:   "member-1",
		Amount:     100000,
		SuccessURL: "https://app.example.com/dashboard",
		CancelURL:  "https://app.example.com/pay",
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}

	if session.ID != "cs_123" {
		t.Errorf("ID = %q, want cs_123", session.ID)
	}
	if session.CheckoutURL != "https://checkout.paymongo.com/cs_123" {
		t.Errorf("CheckoutURL = %q", session.CheckoutURL)
	}

	if gotPath != "/checkout_sessions" {
		t.Errorf("request path = %q, want /checkout_sessions", gotPath)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("sk_test_secret:"))
	if gotAuth != wantAuth {
		t.Errorf("Authorization = %q, want %q", gotAuth, wantAuth)
	}

	attrs := gotBody.Data.Attributes
	if len(attrs.LineItems) != 1 || attrs.LineItems[0].Amount != 100000 {
		t.Errorf("line items = %+v, want one item of 100000", attrs.LineItems)
	}
	if attrs.LineItems[0].Currency != "PHP" {
		t.Errorf("currency = %q, want PHP", attrs.LineItems[0].Currency)
	}
	if attrs.Metadata["memberId"] != "member-1" {
		t.Errorf("metadata = %v, want memberId member-1", attrs.Metadata)
	}
	if attrs.Billing.Email != "maria@example.com" {
		t.Errorf("billing email = %q", attrs.Billing.Email)
	}
}

func TestCreateCheckoutSessionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors": [{"detail": "invalid key"}]}`))
	}))
	defer server.Close()

	client := NewClient("sk_bad", server.URL)
	if _, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{Amount: 100000}); err == nil {
		t.Error("CreateCheckoutSession succeeded despite API error")
	}
}

func TestCreateCheckoutSessionMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data": {"id": "cs_123", "attributes": {}}}`))
	}))
	defer server.Close()

	client := NewClient("sk_test", server.URL)
	if _, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{Amount: 100000}); err == nil {
		t.Error("CreateCheckoutSession succeeded without a checkout URL")
	}
}
