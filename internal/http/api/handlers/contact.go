package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/models"
	"gorm.io/gorm"
)

// ContactHandler serves the public contact form and admin message listing.
type ContactHandler struct {
	db *gorm.DB
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

// submitContactRequest defines the request body for contact submissions.
type submitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit stores a contact-form message.
func (h *ContactHandler) Submit(c *gin.Context) {
	var body submitContactRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(body.Name)
	email := normalizeEmail(body.Email)
	message := strings.TrimSpace(body.Message)
	if name == "" || email == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, email and message are required"})
		return
	}

	contact := models.Contact{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(body.Subject),
		Message: message,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&contact).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error submitting message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Message sent successfully", "contact": contactJSON(&contact)})
}

// contactJSON shapes a contact message for API responses.
func contactJSON(m *models.Contact) gin.H {
	return gin.H{
		"id":        m.ID,
		"name":      m.Name,
		"email":     m.Email,
		"subject":   m.Subject,
		"message":   m.Message,
		"createdAt": m.CreatedAt,
	}
}

// List returns all contact messages, newest first.
func (h *ContactHandler) List(c *gin.Context) {
	var rows []models.Contact
	if errFind := h.db.WithContext(c.Request.Context()).Order("created_at DESC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching messages"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, contactJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": out})
}
