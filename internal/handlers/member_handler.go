package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberHandler handles member roster HTTP requests
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// GetMemberByID handles GET /members/:id
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	member, err := h.memberService.GetMemberByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// GetAllMembers handles GET /members
func (h *MemberHandler) GetAllMembers(c *gin.Context) {
	members, err := h.memberService.GetAllMembers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// memberUpdateRequest is the mutable slice of a member record
type memberUpdateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UpdateMember handles PUT /members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req memberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	member, err := h.memberService.GetMemberByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if req.FirstName != "" {
		member.FirstName = req.FirstName
	}
	if req.LastName != "" {
		member.LastName = req.LastName
	}
	if req.Email != "" {
		member.Email = req.Email
	}

	if err := h.memberService.UpdateMember(c.Request.Context(), member); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteMember handles DELETE /members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

// GetMemberCount handles GET /members/count
func (h *MemberHandler) GetMemberCount(c *gin.Context) {
	count, err := h.memberService.GetMemberCount(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetRosterStats handles GET /members/stats
func (h *MemberHandler) GetRosterStats(c *gin.Context) {
	stats, err := h.memberService.RosterStats(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
