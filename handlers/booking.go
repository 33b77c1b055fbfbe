package handlers

import (
	"errors"
	"net/http"
	"time"

	bookingRepo "servana/database/repository/booking"
	"servana/middleware"
	"servana/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle to the company dashboard.
type BookingHandler struct {
	Svc booking.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// ListHandler returns the company's bookings with lazily derived expiry,
// filtered by status group and free-text search.
func (h *BookingHandler) ListHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	filter := booking.ListFilter{
		Group:  c.DefaultQuery("group", booking.GroupAll),
		Search: c.Query("search"),
	}
	views, err := h.Svc.List(companyID, filter, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// AssignHandler assigns a worker to a pending booking.
func (h *BookingHandler) AssignHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input struct {
		WorkerID string `json:"workerId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.Assign(companyID, c.Param("id"), input.WorkerID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// StartHandler starts an assigned booking and generates its completion code.
func (h *BookingHandler) StartHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	b, err := h.Svc.Start(companyID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CompleteHandler verifies the entered code and completes the booking.
func (h *BookingHandler) CompleteHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	var input struct {
		Otp string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.Complete(companyID, c.Param("id"), input.Otp)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// RejectHandler rejects a booking.
func (h *BookingHandler) RejectHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	b, err := h.Svc.Reject(companyID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// GetHandler returns one booking of the company.
func (h *BookingHandler) GetHandler(c *gin.Context) {
	companyID, ok := middleware.CompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "company session required"})
		return
	}

	b, err := h.Svc.GetByID(companyID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// respondBookingError maps service errors onto HTTP. Validation problems and
// a wrong code are specific and immediate; store failures stay generic.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidCode):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "entered code is incorrect"})
	case booking.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, bookingRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, bookingRepo.ErrStaleStatus):
		c.JSON(http.StatusConflict, gin.H{"error": "booking was updated by someone else, reload and retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
	}
}
