package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusFromError maps the service error taxonomy to HTTP status codes
func statusFromError(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

// memberIDFromClaims extracts the authenticated member's id set by the JWT
// middleware.
func memberIDFromClaims(c *gin.Context) (primitive.ObjectID, bool) {
	raw, ok := c.Get("memberId")
	if !ok {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
