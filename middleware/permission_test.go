package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"servana/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func permissionRouter(admin *models.Admin, perm string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if admin != nil {
				c.Set(ContextAdminKey, admin)
				if admin.CompanyID != "" {
					c.Set(ContextCompanyKey, admin.CompanyID)
				}
			}
		},
		RequirePermission(perm),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func TestRequirePermissionWithoutSession(t *testing.T) {
	r := permissionRouter(nil, PermManageBookings)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermissionDeniesMissingPermission(t *testing.T) {
	admin := &models.Admin{Role: models.RoleAdmin, Permissions: []string{PermManageRiders}}
	r := permissionRouter(admin, PermManageBookings)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionAllowsHolder(t *testing.T) {
	admin := &models.Admin{Role: models.RoleAdmin, Permissions: []string{PermManageBookings}}
	r := permissionRouter(admin, PermManageBookings)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionGrantsSuperAdminEverything(t *testing.T) {
	admin := &models.Admin{Role: models.RoleSuperAdmin}
	r := permissionRouter(admin, PermSendCampaigns)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCompanyBlocksAdminOnlySessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/company", RequireCompany(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/company", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
