package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Permission strings gating route groups.
const (
	PermManageCatalog   = "manage_catalog"
	PermManageRiders    = "manage_riders"
	PermManagePromos    = "manage_promos"
	PermManageBookings  = "manage_bookings"
	PermManageWorkers   = "manage_workers"
	PermSendCampaigns   = "send_campaigns"
	PermViewReports     = "view_reports"
)

// RequirePermission allows the request through only when the authenticated
// operator holds the permission string. Runs after JWTAuthMiddleware.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := AdminFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !admin.HasPermission(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.Next()
	}
}

// RequireCompany ensures the session is scoped to a service company.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CompanyFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Company session required"})
			return
		}
		c.Next()
	}
}
