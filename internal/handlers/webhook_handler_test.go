package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories/memory"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newWebhookRouter(repo *memory.TransactionRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWebhookHandler(services.NewLedgerService(repo))
	router := gin.New()
	router.POST("/webhooks/paymongo", handler.HandlePayMongo)
	return router
}

func paymongoEvent(eventType, sessionID, memberID, status string, amount float64) []byte {
	payload := fmt.Sprintf(`{
		"data": {
			"attributes": {
				"type": %q,
				"data": {
					"id": %q,
					"attributes": {
						"payment_intent": {
							"attributes": {"status": %q, "amount": %v}
						},
						"payment_method_used": "gcash",
						"metadata": {"memberId": %q}
					}
				}
			}
		}
	}`, eventType, sessionID, status, amount, memberID)
	return []byte(payload)
}

func postEvent(t *testing.T, router *gin.Engine, body []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/paymongo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return recorder, resp
}

func TestWebhookRecordsCompletedContribution(t *testing.T) {
	repo := memory.NewTransactionRepository()
	router := newWebhookRouter(repo)
	memberID := primitive.NewObjectID()

	recorder, resp := postEvent(t, router,
		paymongoEvent("checkout_session.payment.paid", "cs_hook_1", memberID.Hex(), "succeeded", 100000))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}

	stored, err := repo.FindByCheckoutSessionID(context.Background(), "cs_hook_1")
	if err != nil {
		t.Fatalf("transaction was not recorded: %v", err)
	}
	if stored.Status != models.TransactionCompleted {
		t.Errorf("Status = %q, want %q", stored.Status, models.TransactionCompleted)
	}
	// 100000 centavos is PHP 1000.
	if stored.Amount != 1000 {
		t.Errorf("Amount = %v, want 1000", stored.Amount)
	}
	if stored.MemberID != memberID {
		t.Errorf("MemberID = %s, want %s", stored.MemberID.Hex(), memberID.Hex())
	}
	if stored.PaymentMethod != "gcash" {
		t.Errorf("PaymentMethod = %q, want gcash", stored.PaymentMethod)
	}
}

func TestWebhookRedeliveryIsAcknowledgedOnce(t *testing.T) {
	repo := memory.NewTransactionRepository()
	router := newWebhookRouter(repo)
	memberID := primitive.NewObjectID()
	body := paymongoEvent("checkout_session.payment.paid", "cs_hook_redeliver", memberID.Hex(), "succeeded", 100000)

	for i := 0; i < 3; i++ {
		recorder, _ := postEvent(t, router, body)
		if recorder.Code != http.StatusOK {
			t.Fatalf("delivery %d status = %d, want 200", i, recorder.Code)
		}
	}

	all, err := repo.FindAll(context.Background(), 0)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ledger holds %d records after redelivery, want 1", len(all))
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	repo := memory.NewTransactionRepository()
	router := newWebhookRouter(repo)

	recorder, resp := postEvent(t, router,
		paymongoEvent("payment.refunded", "cs_hook_other", primitive.NewObjectID().Hex(), "succeeded", 100000))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if resp["success"] != false {
		t.Errorf("success = %v, want false", resp["success"])
	}

	all, err := repo.FindAll(context.Background(), 0)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("ignored event was recorded: %d transactions", len(all))
	}
}

func TestWebhookRejectsMalformedEvents(t *testing.T) {
	router := newWebhookRouter(memory.NewTransactionRepository())

	tests := []struct {
		name       string
		body       []byte
		wantStatus int
	}{
		{"not json", []byte("not json"), http.StatusBadRequest},
		{
			"bad member id",
			paymongoEvent("checkout_session.payment.paid", "cs_bad_member", "not-an-object-id", "succeeded", 100000),
			http.StatusOK, // acknowledged, never retried
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/webhooks/paymongo", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}

func TestWebhookFailedPaymentIsRecordedAsFailed(t *testing.T) {
	repo := memory.NewTransactionRepository()
	router := newWebhookRouter(repo)
	memberID := primitive.NewObjectID()

	recorder, _ := postEvent(t, router,
		paymongoEvent("checkout_session.payment.paid", "cs_hook_failed", memberID.Hex(), "failed", 100000))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	stored, err := repo.FindByCheckoutSessionID(context.Background(), "cs_hook_failed")
	if err != nil {
		t.Fatalf("transaction was not recorded: %v", err)
	}
	if stored.Status != models.TransactionFailed {
		t.Errorf("Status = %q, want %q", stored.Status, models.TransactionFailed)
	}
}

func TestWebhookUnknownStatusStaysPending(t *testing.T) {
	repo := memory.NewTransactionRepository()
	router := newWebhookRouter(repo)
	memberID := primitive.NewObjectID()

	recorder, _ := postEvent(t, router,
		paymongoEvent("checkout_session.payment.paid", "cs_hook_pending", memberID.Hex(), "awaiting_next_action", 100000))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	stored, err := repo.FindByCheckoutSessionID(context.Background(), "cs_hook_pending")
	if err != nil {
		t.Fatalf("transaction was not recorded: %v", err)
	}
	if stored.Status != models.TransactionPending {
		t.Errorf("Status = %q, want %q", stored.Status, models.TransactionPending)
	}
}
