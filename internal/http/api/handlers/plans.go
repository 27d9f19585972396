package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanHandler serves public pricing plans and admin CRUD.
type PlanHandler struct {
	db *gorm.DB
}

// NewPlanHandler constructs a PlanHandler.
func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

// planFeature is a single feature entry on a plan.
type planFeature struct {
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// normalizeFeatureList validates a JSON feature-array payload, defaulting to [].
func normalizeFeatureList(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return datatypes.JSON([]byte("[]")), nil
	}
	var items []planFeature
	if errUnmarshal := json.Unmarshal(raw, &items); errUnmarshal != nil {
		return nil, errUnmarshal
	}
	kept := make([]planFeature, 0, len(items))
	for _, item := range items {
		item.Text = strings.TrimSpace(item.Text)
		if item.Text != "" {
			kept = append(kept, item)
		}
	}
	data, errMarshal := json.Marshal(kept)
	if errMarshal != nil {
		return nil, errMarshal
	}
	return datatypes.JSON(data), nil
}

var validBillingCycles = map[string]bool{
	models.BillingCycleHourly:  true,
	models.BillingCycleDaily:   true,
	models.BillingCycleMonthly: true,
	models.BillingCycleYearly:  true,
	models.BillingCycleProject: true,
}

// planJSON shapes a plan row for API responses.
func planJSON(p *models.Plan) gin.H {
	return gin.H{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price,
		"currency":     p.Currency,
		"billingCycle": p.BillingCycle,
		"features":     p.Features,
		"isPopular":    p.IsPopular,
		"buttonText":   p.ButtonText,
		"isActive":     p.IsActive,
		"order":        p.SortOrder,
		"createdAt":    p.CreatedAt,
		"updatedAt":    p.UpdatedAt,
	}
}

// List returns published plans ordered for display.
func (h *PlanHandler) List(c *gin.Context) {
	var rows []models.Plan
	errFind := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("sort_order ASC, price ASC").
		Find(&rows).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching plans"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, planJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// ListAll returns every plan, including unpublished ones.
func (h *PlanHandler) ListAll(c *gin.Context) {
	var rows []models.Plan
	errFind := h.db.WithContext(c.Request.Context()).
		Order("sort_order ASC, price ASC").
		Find(&rows).Error
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching plans"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, planJSON(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// planRequest defines the request body for plan creation and updates.
type planRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        *float64        `json:"price"`
	Currency     string          `json:"currency"`
	BillingCycle string          `json:"billingCycle"`
	Features     json.RawMessage `json:"features"`
	IsPopular    *bool           `json:"isPopular"`
	ButtonText   string          `json:"buttonText"`
	IsActive     *bool           `json:"isActive"`
	SortOrder    *int            `json:"order"`
}

// Create inserts a new pricing plan.
func (h *PlanHandler) Create(c *gin.Context) {
	var body planRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please add a plan name"})
		return
	}
	if body.Price == nil || *body.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please add a valid price"})
		return
	}
	cycle := strings.TrimSpace(body.BillingCycle)
	if cycle == "" {
		cycle = models.BillingCycleHourly
	}
	if !validBillingCycles[cycle] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid billing cycle"})
		return
	}
	features, errFeatures := normalizeFeatureList(body.Features)
	if errFeatures != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid features"})
		return
	}

	plan := models.Plan{
		Name:         name,
		Description:  strings.TrimSpace(body.Description),
		Price:        *body.Price,
		Currency:     "INR",
		BillingCycle: cycle,
		Features:     features,
		ButtonText:   "Book Now",
		IsActive:     true,
	}
	if currency := strings.TrimSpace(body.Currency); currency != "" {
		plan.Currency = strings.ToUpper(currency)
	}
	if text := strings.TrimSpace(body.ButtonText); text != "" {
		plan.ButtonText = text
	}
	if body.IsPopular != nil {
		plan.IsPopular = *body.IsPopular
	}
	if body.IsActive != nil {
		plan.IsActive = *body.IsActive
	}
	if body.SortOrder != nil {
		plan.SortOrder = *body.SortOrder
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&plan).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error creating plan"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": planJSON(&plan)})
}

// Update modifies a plan by id.
func (h *PlanHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid plan id"})
		return
	}
	var body planRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if name := strings.TrimSpace(body.Name); name != "" {
		updates["name"] = name
	}
	if desc := strings.TrimSpace(body.Description); desc != "" {
		updates["description"] = desc
	}
	if body.Price != nil {
		if *body.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please add a valid price"})
			return
		}
		updates["price"] = *body.Price
	}
	if currency := strings.TrimSpace(body.Currency); currency != "" {
		updates["currency"] = strings.ToUpper(currency)
	}
	if cycle := strings.TrimSpace(body.BillingCycle); cycle != "" {
		if !validBillingCycles[cycle] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid billing cycle"})
			return
		}
		updates["billing_cycle"] = cycle
	}
	if len(body.Features) > 0 {
		features, errFeatures := normalizeFeatureList(body.Features)
		if errFeatures != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid features"})
			return
		}
		updates["features"] = features
	}
	if body.IsPopular != nil {
		updates["is_popular"] = *body.IsPopular
	}
	if text := strings.TrimSpace(body.ButtonText); text != "" {
		updates["button_text"] = text
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if body.SortOrder != nil {
		updates["sort_order"] = *body.SortOrder
	}

	ctx := c.Request.Context()
	res := h.db.WithContext(ctx).Model(&models.Plan{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating plan"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plan not found"})
		return
	}

	var plan models.Plan
	if errReload := h.db.WithContext(ctx).First(&plan, id).Error; errReload != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error updating plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": planJSON(&plan)})
}

// Delete removes a plan by id.
func (h *PlanHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid plan id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.Plan{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error deleting plan"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Plan removed"})
}
