package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const eventPaymentPaid = "checkout_session.payment.paid"

// WebhookHandler handles payment-gateway webhook deliveries
type WebhookHandler struct {
	ledgerService services.LedgerService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(ledgerService services.LedgerService) *WebhookHandler {
	return &WebhookHandler{ledgerService: ledgerService}
}

// webhookEvent mirrors the PayMongo event envelope, reduced to the fields the
// ledger needs.
type webhookEvent struct {
	Data struct {
		Attributes struct {
			Type string `json:"type"`
			Data struct {
				ID         string `json:"id"`
				Attributes struct {
					PaymentIntent struct {
						Attributes struct {
							Status string  `json:"status"`
							Amount float64 `json:"amount"` // minor units
						} `json:"attributes"`
					} `json:"payment_intent"`
					PaymentMethodUsed string            `json:"payment_method_used"`
					Metadata          map[string]string `json:"metadata"`
				} `json:"attributes"`
			} `json:"data"`
		} `json:"attributes"`
	} `json:"data"`
}

// HandlePayMongo handles POST /webhooks/paymongo.
//
// Response codes are chosen around the gateway's redelivery behavior: only
// transient storage failures return 5xx (so the event is redelivered);
// malformed or conflicting events are acknowledged with success=false since
// redelivering them cannot succeed.
func (h *WebhookHandler) HandlePayMongo(c *gin.Context) {
	var event webhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid webhook payload"})
		return
	}

	eventType := event.Data.Attributes.Type
	if eventType != eventPaymentPaid {
		slog.Info("Ignoring unhandled webhook event", "type", eventType)
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Unhandled event type: " + eventType})
		return
	}

	session := event.Data.Attributes.Data
	memberID, err := primitive.ObjectIDFromHex(session.Attributes.Metadata["memberId"])
	if err != nil {
		slog.Error("Webhook event carries invalid member id", "checkoutSessionId", session.ID,
			"memberId", session.Attributes.Metadata["memberId"])
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid member id in event metadata"})
		return
	}

	intent := session.Attributes.PaymentIntent.Attributes
	transaction, err := h.ledgerService.RecordTransaction(c.Request.Context(), services.RecordTransactionParams{
		CheckoutSessionID: session.ID,
		Amount:            intent.Amount / 100, // minor units to pesos
		MemberID:          memberID,
		Status:            mapPaymentStatus(intent.Status),
		PaymentMethod:     session.Attributes.PaymentMethodUsed,
	})
	if err != nil {
		if apperrors.IsStorage(err) {
			// Retryable: the gateway redelivers on 5xx.
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment processed successfully",
		"data":    gin.H{"transaction": transaction},
	})
}

// mapPaymentStatus maps gateway payment statuses to transaction statuses.
// Unknown statuses become pending; events are never dropped.
func mapPaymentStatus(status string) string {
	switch status {
	case "succeeded":
		return models.TransactionCompleted
	case "failed":
		return models.TransactionFailed
	default:
		return models.TransactionPending
	}
}
