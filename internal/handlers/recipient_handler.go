package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/services"
)

// RecipientHandler handles payout selection HTTP requests
type RecipientHandler struct {
	recipientService services.RecipientService
}

// NewRecipientHandler creates a new RecipientHandler
func NewRecipientHandler(recipientService services.RecipientService) *RecipientHandler {
	return &RecipientHandler{recipientService: recipientService}
}

// GetCurrentRecipient handles GET /recipients/current.
// Responds with JSON null when no draw has happened yet.
func (h *RecipientHandler) GetCurrentRecipient(c *gin.Context) {
	recipient, err := h.recipientService.CurrentRecipient(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipient)
}

// GetRecipientsByYear handles GET /recipients/year/:year
func (h *RecipientHandler) GetRecipientsByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	recipients, err := h.recipientService.RecipientsByYear(c.Request.Context(), year)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipients)
}

// TriggerSelection handles POST /recipients/select.
// Non-selection outcomes are reported in the result tag, not as errors.
func (h *RecipientHandler) TriggerSelection(c *gin.Context) {
	result, err := h.recipientService.SelectRecipient(c.Request.Context(), time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNextDeadline handles GET /recipients/deadline/me
func (h *RecipientHandler) GetNextDeadline(c *gin.Context) {
	memberID, ok := memberIDFromClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deadline, err := h.recipientService.NextContributionDeadline(c.Request.Context(), memberID, time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deadline": deadline})
}
