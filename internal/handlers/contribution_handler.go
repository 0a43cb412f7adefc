package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/services"
)

// ContributionHandler handles checkout initiation HTTP requests
type ContributionHandler struct {
	contributionService services.ContributionService
}

// NewContributionHandler creates a new ContributionHandler
func NewContributionHandler(contributionService services.ContributionService) *ContributionHandler {
	return &ContributionHandler{contributionService: contributionService}
}

// Checkout handles POST /contributions/checkout
func (h *ContributionHandler) Checkout(c *gin.Context) {
	memberID, ok := memberIDFromClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	checkoutURL, err := h.contributionService.Checkout(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkoutUrl": checkoutURL})
}
