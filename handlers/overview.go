package handlers

import (
	"net/http"
	"time"

	"servana/middleware"
	"servana/services/overview"

	"github.com/gin-gonic/gin"
)

// OverviewHandler serves the dashboard statistics page.
type OverviewHandler struct {
	Svc overview.OverviewService
}

// NewOverviewHandler creates an OverviewHandler.
func NewOverviewHandler(svc overview.OverviewService) *OverviewHandler {
	return &OverviewHandler{Svc: svc}
}

// StatsHandler returns the weekly chart, top services, revenue and status
// counts for the signed-in company.
func (h *OverviewHandler) StatsHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	stats, err := h.Svc.ForCompany(companyID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load overview, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
