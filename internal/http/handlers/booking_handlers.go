package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/middleware"
)

// BookingService is what the booking handlers need from the workflow
type BookingService interface {
	domain.BookingService
	domain.BookingLists
}

// BookingHandlers handles booking and dashboard endpoints
type BookingHandlers struct {
	bookings BookingService
}

// NewBookingHandlers creates new booking handlers
func NewBookingHandlers(bookings BookingService) *BookingHandlers {
	return &BookingHandlers{bookings: bookings}
}

// Request files a booking for the signed-in seeker
func (h *BookingHandlers) Request(c *gin.Context) {
	var req domain.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.bookings.Request(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Mine lists the seeker's bookings
func (h *BookingHandlers) Mine(c *gin.Context) {
	list, err := h.bookings.TenantBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Owner lists bookings against the owner's properties
func (h *BookingHandlers) Owner(c *gin.Context) {
	list, err := h.bookings.OwnerBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Decide approves or rejects a pending booking
func (h *BookingHandlers) Decide(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status domain.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.bookings.Decide(c.Request.Context(), middleware.UserID(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Dashboard serves the owner's aggregate
func (h *BookingHandlers) Dashboard(c *gin.Context) {
	summary, err := h.bookings.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
