package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatsHandler handles contribution statistics HTTP requests
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetSummary handles GET /stats/summary
func (h *StatsHandler) GetSummary(c *gin.Context) {
	summary, err := h.statsService.Summarize(c.Request.Context(), nil)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMemberSummary handles GET /stats/summary/member/:id
func (h *StatsHandler) GetMemberSummary(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	summary, err := h.statsService.Summarize(c.Request.Context(), &id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMemberStats handles GET /stats/member/:id
func (h *StatsHandler) GetMemberStats(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	stats, err := h.statsService.MemberStats(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetAllMemberStats handles GET /stats/members
func (h *StatsHandler) GetAllMemberStats(c *gin.Context) {
	stats, err := h.statsService.AllMemberStats(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMyMonthlyRollup handles GET /stats/monthly/me
func (h *StatsHandler) GetMyMonthlyRollup(c *gin.Context) {
	memberID, ok := memberIDFromClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rollup, err := h.statsService.MonthlyRollup(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rollup)
}

// GetMemberMonthlyRollup handles GET /stats/monthly/member/:id
func (h *StatsHandler) GetMemberMonthlyRollup(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	rollup, err := h.statsService.MonthlyRollup(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rollup)
}
