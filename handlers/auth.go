package handlers

import (
	"net/http"
	"strings"
	"time"

	adminRepo "servana/database/repository/admin"
	"servana/middleware"
	"servana/models"
	"servana/services/identity"
	"servana/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler owns operator sign-in and sign-out.
type AuthHandler struct {
	Admins   adminRepo.AdminRepository
	Identity *identity.Provider
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(admins adminRepo.AdminRepository, provider *identity.Provider) *AuthHandler {
	return &AuthHandler{Admins: admins, Identity: provider}
}

// LoginHandler authenticates an operator and returns a bearer token. A
// company operator's sign-in also establishes the notification session.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	admin, err := h.Admins.GetByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(admin.ID, admin.Role, 24*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	if admin.Role == models.RoleCompany && admin.CompanyID != "" {
		h.Identity.SignIn(admin.CompanyID)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"role":        admin.Role,
		"permissions": admin.Permissions,
		"companyId":   admin.CompanyID,
	})
}

// LogoutHandler tears the session down: the bearer token is revoked and the
// company's notification engine is discarded with it.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if companyID, ok := middleware.CompanyFromContext(c); ok {
		h.Identity.SignOut(companyID)
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if err := utils.RevokeToken(tokenString, 24*time.Hour); err != nil {
			utils.GetLogger().Warn("failed to revoke token on logout", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}
