package middleware

import (
	"net/http"
	"strings"

	adminRepo "servana/database/repository/admin"
	"servana/models"
	"servana/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextAdminKey   = "admin"
	ContextCompanyKey = "companyID"
)

// JWTAuthMiddleware validates the bearer token and loads the operator it
// identifies. A missing or invalid token is an authorization gap, not an
// error: the request simply does not proceed.
func JWTAuthMiddleware(admins adminRepo.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if utils.IsTokenRevoked(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}

		subject, _, err := utils.TokenClaims(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		admin, err := admins.GetByID(subject)
		if err != nil || admin == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Operator not found"})
			return
		}

		c.Set(ContextAdminKey, admin)
		if admin.CompanyID != "" {
			c.Set(ContextCompanyKey, admin.CompanyID)
		}
		c.Next()
	}
}

// AdminFromContext retrieves the authenticated operator placed by the auth middleware.
func AdminFromContext(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(ContextAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}

// CompanyFromContext retrieves the company scope of the authenticated session.
func CompanyFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextCompanyKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
