package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/db"
	"github.com/voxedgemedia/media-api/internal/models"
	"gorm.io/gorm"
)

// recentBookingLimit bounds the dashboard's recent activity list.
const recentBookingLimit = 5

// AdminHandler serves the admin dashboard and management endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// adminBookingJSON shapes a booking row with its owning user for admin views.
func adminBookingJSON(b *models.Booking) gin.H {
	out := bookingJSON(b)
	if b.User != nil {
		out["user"] = gin.H{
			"id":          b.User.ID,
			"displayName": b.User.DisplayName,
			"email":       b.User.Email,
			"phoneNumber": b.User.PhoneNumber,
		}
	}
	return out
}

// DashboardStats returns aggregate counts, paid revenue, and recent bookings.
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	var userCount, bookingCount, pendingCount, completedCount, messageCount int64
	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&userCount, h.db.WithContext(ctx).Model(&models.User{})},
		{&bookingCount, h.db.WithContext(ctx).Model(&models.Booking{})},
		{&pendingCount, h.db.WithContext(ctx).Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending)},
		{&completedCount, h.db.WithContext(ctx).Model(&models.Booking{}).Where("status = ?", models.BookingStatusCompleted)},
		{&messageCount, h.db.WithContext(ctx).Model(&models.Contact{})},
	}
	for _, count := range counts {
		if errCount := count.query.Count(count.dest).Error; errCount != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching dashboard stats"})
			return
		}
	}

	var revenue float64
	errSum := h.db.WithContext(ctx).Model(&models.Booking{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error
	if errSum != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching dashboard stats"})
		return
	}

	var recent []models.Booking
	errRecent := h.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Limit(recentBookingLimit).
		Find(&recent).Error
	if errRecent != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching dashboard stats"})
		return
	}
	recentOut := make([]gin.H, 0, len(recent))
	for i := range recent {
		recentOut = append(recentOut, adminBookingJSON(&recent[i]))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"totalUsers":        userCount,
		"totalBookings":     bookingCount,
		"pendingBookings":   pendingCount,
		"completedBookings": completedCount,
		"totalMessages":     messageCount,
		"totalRevenue":      revenue,
		"recentBookings":    recentOut,
	}})
}

// ListBookings returns all bookings with their owning users, optionally
// filtered by status.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Preload("User").Order("created_at DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.Booking
	if errFind := query.Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching bookings"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, adminBookingJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

var validBookingStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCompleted: true,
	models.BookingStatusCancelled: true,
}

var validPaymentStatuses = map[string]bool{
	models.PaymentStatusPending:  true,
	models.PaymentStatusPaid:     true,
	models.PaymentStatusRefunded: true,
}

// UpdateBookingStatus moves a booking through its lifecycle. Admins can set
// any status and payment state without the owner-side transition rules.
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking id"})
		return
	}

	var body struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"paymentStatus"`
	}
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if status := strings.TrimSpace(body.Status); status != "" {
		if !validBookingStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
			return
		}
		updates["status"] = status
	}
	if payment := strings.TrimSpace(body.PaymentStatus); payment != "" {
		if !validPaymentStatuses[payment] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment status"})
			return
		}
		updates["payment_status"] = payment
	}
	if len(updates) == 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a status to update"})
		return
	}

	ctx := c.Request.Context()
	res := h.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating booking"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	var booking models.Booking
	if errReload := h.db.WithContext(ctx).Preload("User").First(&booking, id).Error; errReload != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": adminBookingJSON(&booking)})
}

// ListMessages returns contact messages, newest first.
func (h *AdminHandler) ListMessages(c *gin.Context) {
	var rows []models.Contact
	errFind := h.db.WithContext(c.Request.Context()).Order("created_at DESC").Find(&rows).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching messages"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, contactJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// ListUsers returns user accounts, newest first, with optional search over
// display name and email.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Order("created_at DESC")
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := db.NormalizeLikePattern(h.db, "%"+search+"%")
		query = query.Where(
			db.CaseInsensitiveLikeExpr(h.db, "display_name")+" OR "+db.CaseInsensitiveLikeExpr(h.db, "email"),
			pattern, pattern,
		)
	}

	var rows []models.User
	if errFind := query.Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching users"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, userJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// UpdateUser changes a user's active flag or role.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var body struct {
		IsActive *bool  `json:"isActive"`
		Role     string `json:"role"`
	}
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if role := strings.TrimSpace(body.Role); role != "" {
		if role != models.RoleUser && role != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
			return
		}
		updates["role"] = role
	}
	if len(updates) == 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a field to update"})
		return
	}

	ctx := c.Request.Context()
	res := h.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	var user models.User
	if errReload := h.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; errReload != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": userJSON(&user)})
}
