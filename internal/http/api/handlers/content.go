package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentHandler serves editable page content blocks addressed by key.
type ContentHandler struct {
	db *gorm.DB
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{db: db}
}

// contentJSON shapes a content row for API responses.
func contentJSON(b *models.Content) gin.H {
	return gin.H{
		"id":              b.ID,
		"key":             b.Key,
		"title":           b.Title,
		"body":            b.Body,
		"metaDescription": b.MetaDescription,
		"images":          b.Images,
		"data":            b.Data,
		"createdAt":       b.CreatedAt,
		"updatedAt":       b.UpdatedAt,
	}
}

// Get returns a content block by key. Content reads are public so the site
// can render without a session.
func (h *ContentHandler) Get(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	var block models.Content
	errFind := h.db.WithContext(c.Request.Context()).Where("key = ?", key).First(&block).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": contentJSON(&block)})
}

// ListAll returns every content block for the admin editor.
func (h *ContentHandler) ListAll(c *gin.Context) {
	var rows []models.Content
	errFind := h.db.WithContext(c.Request.Context()).Order("key ASC").Find(&rows).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching content"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, contentJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// contentRequest defines the request body for content upserts.
type contentRequest struct {
	Key             string          `json:"key"`
	Title           string          `json:"title"`
	Body            string          `json:"body"`
	MetaDescription string          `json:"metaDescription"`
	Images          json.RawMessage `json:"images"`
	Data            json.RawMessage `json:"data"`
}

// Upsert creates or replaces the content block stored under the given key.
func (h *ContentHandler) Upsert(c *gin.Context) {
	var body contentRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	key := strings.TrimSpace(strings.ToLower(body.Key))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a content key"})
		return
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a title"})
		return
	}

	images, errImages := normalizeStringList(body.Images)
	if errImages != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid images"})
		return
	}
	data := datatypes.JSON([]byte("{}"))
	if len(body.Data) > 0 && string(body.Data) != "null" {
		if !json.Valid(body.Data) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid data"})
			return
		}
		data = datatypes.JSON(body.Data)
	}

	block := models.Content{
		Key:             key,
		Title:           title,
		Body:            body.Body,
		MetaDescription: strings.TrimSpace(body.MetaDescription),
		Images:          images,
		Data:            data,
	}
	ctx := c.Request.Context()
	errUpsert := h.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"title":            block.Title,
			"body":             block.Body,
			"meta_description": block.MetaDescription,
			"images":           block.Images,
			"data":             block.Data,
			"updated_at":       time.Now().UTC(),
		}),
	}).Create(&block).Error
	if errUpsert != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error saving content"})
		return
	}

	var saved models.Content
	if errReload := h.db.WithContext(ctx).Where("key = ?", key).First(&saved).Error; errReload != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error saving content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": contentJSON(&saved)})
}

// Delete removes a content block by key.
func (h *ContentHandler) Delete(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	res := h.db.WithContext(c.Request.Context()).Where("key = ?", key).Delete(&models.Content{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error deleting content"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Content not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Content removed"})
}
