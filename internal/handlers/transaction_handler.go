package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionHandler handles contribution ledger HTTP requests
type TransactionHandler struct {
	ledgerService services.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService services.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// limitQuery parses the optional ?limit= query parameter
func limitQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return 0, false
	}
	return limit, true
}

// GetAllTransactions handles GET /transactions?limit=n
func (h *TransactionHandler) GetAllTransactions(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	transactions, err := h.ledgerService.ListTransactions(c.Request.Context(), services.TransactionFilter{Limit: limit})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetMemberTransactions handles GET /transactions/member/:id?limit=n
func (h *TransactionHandler) GetMemberTransactions(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	transactions, err := h.ledgerService.ListTransactions(c.Request.Context(), services.TransactionFilter{MemberID: &id, Limit: limit})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetMyTransactions handles GET /transactions/me
func (h *TransactionHandler) GetMyTransactions(c *gin.Context) {
	memberID, ok := memberIDFromClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transactions, err := h.ledgerService.ListTransactions(c.Request.Context(), services.TransactionFilter{MemberID: &memberID})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
