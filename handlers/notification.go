package handlers

import (
	"net/http"

	"servana/middleware"
	"servana/services/notification"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the per-session alert queues of the signed-in
// company. Every route requires a running engine; a company whose session has
// not produced one yet gets an empty-but-valid response rather than an error.
type NotificationHandler struct {
	Manager *notification.Manager
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(manager *notification.Manager) *NotificationHandler {
	return &NotificationHandler{Manager: manager}
}

func (h *NotificationHandler) engine(c *gin.Context) (*notification.Engine, bool) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return nil, false
	}
	return h.Manager.EngineFor(companyID), true
}

// ActiveHandler returns the transient alert queue, newest first.
func (h *NotificationHandler) ActiveHandler(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	if engine == nil {
		c.JSON(http.StatusOK, gin.H{"notifications": []interface{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": engine.Active()})
}

// StoredHandler returns the durable alert history, newest first.
func (h *NotificationHandler) StoredHandler(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	if engine == nil {
		c.JSON(http.StatusOK, gin.H{"notifications": []interface{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": engine.Stored()})
}

// NotifyHandler surfaces a manually triggered alert for the session.
func (h *NotificationHandler) NotifyHandler(c *gin.Context) {
	var input struct {
		Type    string `json:"type"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Type == "" {
		input.Type = "default"
	}

	engine, ok := h.engine(c)
	if !ok {
		return
	}
	if engine == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "notification session not ready, retry shortly"})
		return
	}
	n := engine.Notify(input.Type, input.Message)
	c.JSON(http.StatusCreated, gin.H{"notification": n})
}

// DismissStoredHandler removes one entry from the durable history.
func (h *NotificationHandler) DismissStoredHandler(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	if engine != nil {
		engine.DismissStored(c.Param("id"))
	}
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}

// ClearStoredHandler drops the whole durable history.
func (h *NotificationHandler) ClearStoredHandler(c *gin.Context) {
	engine, ok := h.engine(c)
	if !ok {
		return
	}
	if engine != nil {
		engine.ClearStored()
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
