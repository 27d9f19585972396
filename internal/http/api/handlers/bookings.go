package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/models"
	"gorm.io/gorm"
)

// bookableServices are the service slugs accepted on new bookings.
var bookableServices = map[string]bool{
	"podcast-audio":      true,
	"podcast-video":      true,
	"shorts-reels":       true,
	"editing":            true,
	"virtual-production": true,
}

// BookingHandler serves booking endpoints for authenticated users.
type BookingHandler struct {
	db *gorm.DB
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

// bookingJSON shapes a booking row for API responses.
func bookingJSON(b *models.Booking) gin.H {
	out := gin.H{
		"id":            b.ID,
		"service":       b.Service,
		"date":          b.Date,
		"startTime":     b.StartTime,
		"duration":      b.Duration,
		"status":        b.Status,
		"totalPrice":    b.TotalPrice,
		"paymentStatus": b.PaymentStatus,
		"notes":         b.Notes,
		"createdAt":     b.CreatedAt,
		"updatedAt":     b.UpdatedAt,
	}
	if b.User != nil {
		out["user"] = gin.H{"id": b.User.ID, "displayName": b.User.DisplayName, "email": b.User.Email}
	} else {
		out["user"] = b.UserID
	}
	return out
}

// createBookingRequest defines the request body for booking creation.
type createBookingRequest struct {
	Service    string    `json:"service"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	Duration   int       `json:"duration"`
	TotalPrice float64   `json:"totalPrice"`
	Notes      string    `json:"notes"`
}

// Create books a session for the authenticated user.
func (h *BookingHandler) Create(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided. Please login."})
		return
	}

	var body createBookingRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	service := strings.TrimSpace(body.Service)
	if !bookableServices[service] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown service"})
		return
	}
	if body.Date.IsZero() || strings.TrimSpace(body.StartTime) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Date and start time are required"})
		return
	}
	if body.Duration < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Duration must be at least 1 hour"})
		return
	}

	booking := models.Booking{
		UserID:        principal.ID(),
		Service:       service,
		Date:          body.Date,
		StartTime:     strings.TrimSpace(body.StartTime),
		Duration:      body.Duration,
		Status:        models.BookingStatusPending,
		TotalPrice:    body.TotalPrice,
		PaymentStatus: models.PaymentStatusPending,
		Notes:         body.Notes,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&booking).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error creating booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": bookingJSON(&booking)})
}

// ListMine returns the authenticated user's bookings, newest session first.
func (h *BookingHandler) ListMine(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided. Please login."})
		return
	}

	var rows []models.Booking
	errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", principal.ID()).
		Order("date DESC").
		Find(&rows).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching bookings"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, bookingJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": out})
}

// loadOwnedBooking fetches a booking and enforces ownership. Admins may
// access any booking.
func (h *BookingHandler) loadOwnedBooking(c *gin.Context) (*models.Booking, bool) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided. Please login."})
		return nil, false
	}

	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking id"})
		return nil, false
	}

	var booking models.Booking
	errFind := h.db.WithContext(c.Request.Context()).Preload("User").First(&booking, id).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching booking"})
		return nil, false
	}

	if booking.UserID != principal.ID() && !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized"})
		return nil, false
	}
	return &booking, true
}

// Get returns a booking owned by the authenticated user.
func (h *BookingHandler) Get(c *gin.Context) {
	booking, ok := h.loadOwnedBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": bookingJSON(booking)})
}

// updateBookingRequest defines the request body for booking updates.
type updateBookingRequest struct {
	Date      *time.Time `json:"date"`
	StartTime *string    `json:"startTime"`
	Duration  *int       `json:"duration"`
	Notes     *string    `json:"notes"`
}

// Update modifies a booking owned by the authenticated user.
func (h *BookingHandler) Update(c *gin.Context) {
	booking, ok := h.loadOwnedBooking(c)
	if !ok {
		return
	}

	var body updateBookingRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if body.Date != nil && !body.Date.IsZero() {
		updates["date"] = *body.Date
	}
	if body.StartTime != nil && strings.TrimSpace(*body.StartTime) != "" {
		updates["start_time"] = strings.TrimSpace(*body.StartTime)
	}
	if body.Duration != nil {
		if *body.Duration < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Duration must be at least 1 hour"})
			return
		}
		updates["duration"] = *body.Duration
	}
	if body.Notes != nil {
		updates["notes"] = *body.Notes
	}

	ctx := c.Request.Context()
	if errUpdate := h.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating booking"})
		return
	}

	var updated models.Booking
	if errReload := h.db.WithContext(ctx).Preload("User").First(&updated, booking.ID).Error; errReload != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": bookingJSON(&updated)})
}

// Delete removes a booking owned by the authenticated user.
func (h *BookingHandler) Delete(c *gin.Context) {
	booking, ok := h.loadOwnedBooking(c)
	if !ok {
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&models.Booking{}, booking.ID).Error; errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error deleting booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking removed"})
}
