package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ServiceHandler serves public service listings and admin CRUD.
type ServiceHandler struct {
	db *gorm.DB
}

// NewServiceHandler constructs a ServiceHandler.
func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

var slugStripPattern = regexp.MustCompile(`[^\w ]+`)

// slugify derives a URL slug from a service title.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	return strings.Join(strings.Fields(slug), "-")
}

// normalizeStringList validates a JSON string-array payload, defaulting to [].
func normalizeStringList(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return datatypes.JSON([]byte("[]")), nil
	}
	var items []string
	if errUnmarshal := json.Unmarshal(raw, &items); errUnmarshal != nil {
		return nil, errUnmarshal
	}
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	data, errMarshal := json.Marshal(cleaned)
	if errMarshal != nil {
		return nil, errMarshal
	}
	return datatypes.JSON(data), nil
}

// serviceJSON shapes a service row for API responses.
func serviceJSON(s *models.Service) gin.H {
	return gin.H{
		"id":              s.ID,
		"title":           s.Title,
		"slug":            s.Slug,
		"description":     s.Description,
		"longDescription": s.LongDescription,
		"icon":            s.Icon,
		"image":           s.Image,
		"features":        s.Features,
		"startingPrice":   s.StartingPrice,
		"isActive":        s.IsActive,
		"order":           s.SortOrder,
		"createdAt":       s.CreatedAt,
		"updatedAt":       s.UpdatedAt,
	}
}

// List returns published services ordered for display.
func (h *ServiceHandler) List(c *gin.Context) {
	var rows []models.Service
	errFind := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&rows).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching services"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, serviceJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// ListAll returns every service, including unpublished ones.
func (h *ServiceHandler) ListAll(c *gin.Context) {
	var rows []models.Service
	errFind := h.db.WithContext(c.Request.Context()).
		Order("sort_order ASC, created_at ASC").
		Find(&rows).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching services"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, serviceJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// Get returns a published service by slug.
func (h *ServiceHandler) Get(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	var service models.Service
	errFind := h.db.WithContext(c.Request.Context()).Where("slug = ?", slug).First(&service).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": serviceJSON(&service)})
}

// serviceRequest defines the request body for service creation and updates.
type serviceRequest struct {
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	LongDescription string          `json:"longDescription"`
	Icon            string          `json:"icon"`
	Image           string          `json:"image"`
	Features        json.RawMessage `json:"features"`
	StartingPrice   *float64        `json:"startingPrice"`
	IsActive        *bool           `json:"isActive"`
	SortOrder       *int            `json:"order"`
}

// Create inserts a new service. The slug is derived from the title when
// not supplied.
func (h *ServiceHandler) Create(c *gin.Context) {
	var body serviceRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	title := strings.TrimSpace(body.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please add a service title"})
		return
	}
	if strings.TrimSpace(body.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please add a short description"})
		return
	}

	features, errFeatures := normalizeStringList(body.Features)
	if errFeatures != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid features"})
		return
	}

	slug := strings.TrimSpace(body.Slug)
	if slug == "" {
		slug = slugify(title)
	}

	service := models.Service{
		Title:           title,
		Slug:            slug,
		Description:     strings.TrimSpace(body.Description),
		LongDescription: body.LongDescription,
		Icon:            strings.TrimSpace(body.Icon),
		Image:           strings.TrimSpace(body.Image),
		Features:        features,
		IsActive:        true,
	}
	if body.StartingPrice != nil {
		service.StartingPrice = *body.StartingPrice
	}
	if body.IsActive != nil {
		service.IsActive = *body.IsActive
	}
	if body.SortOrder != nil {
		service.SortOrder = *body.SortOrder
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&service).Error; errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A service with this slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error creating service"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": serviceJSON(&service)})
}

// Update modifies a service by id.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service id"})
		return
	}
	var body serviceRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if title := strings.TrimSpace(body.Title); title != "" {
		updates["title"] = title
	}
	if slug := strings.TrimSpace(body.Slug); slug != "" {
		updates["slug"] = slug
	}
	if desc := strings.TrimSpace(body.Description); desc != "" {
		updates["description"] = desc
	}
	if body.LongDescription != "" {
		updates["long_description"] = body.LongDescription
	}
	if icon := strings.TrimSpace(body.Icon); icon != "" {
		updates["icon"] = icon
	}
	if image := strings.TrimSpace(body.Image); image != "" {
		updates["image"] = image
	}
	if len(body.Features) > 0 {
		features, errFeatures := normalizeStringList(body.Features)
		if errFeatures != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid features"})
			return
		}
		updates["features"] = features
	}
	if body.StartingPrice != nil {
		updates["starting_price"] = *body.StartingPrice
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if body.SortOrder != nil {
		updates["sort_order"] = *body.SortOrder
	}

	ctx := c.Request.Context()
	res := h.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating service"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service not found"})
		return
	}

	var service models.Service
	if errReload := h.db.WithContext(ctx).First(&service, id).Error; errReload != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": serviceJSON(&service)})
}

// Delete removes a service by id.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error deleting service"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service removed"})
}
