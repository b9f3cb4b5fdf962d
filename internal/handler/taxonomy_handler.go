package handler

import (
	"net/http"
	"strings"

	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaxonomyHandler lists the entities games are classified by.
type TaxonomyHandler struct {
	db *gorm.DB
}

func NewTaxonomyHandler(db *gorm.DB) *TaxonomyHandler {
	return &TaxonomyHandler{db: db}
}

func listNamed[T any, PT interface {
	*T
	models.Named
}](h *TaxonomyHandler, c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Order("name")
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var items []T
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve list"})
		return
	}

	response := make([]NamedResponse, 0, len(items))
	for i := range items {
		item := PT(&items[i])
		response = append(response, NamedResponse{ID: item.GetID(), Name: item.GetName(), Slug: item.GetSlug()})
	}
	c.JSON(http.StatusOK, response)
}

// GetCategories godoc
// @Summary      Get all categories
// @Tags         taxonomy
// @Produce      json
// @Param        q   query     string  false  "Name filter"
// @Success      200 {array}   NamedResponse
// @Failure      500 {object}  ErrorResponse
// @Router       /categories [get]
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	listNamed[models.Category](h, c)
}

// GetPlatforms godoc
// @Summary      Get all platforms
// @Tags         taxonomy
// @Produce      json
// @Param        q   query     string  false  "Name filter"
// @Success      200 {array}   NamedResponse
// @Failure      500 {object}  ErrorResponse
// @Router       /platforms [get]
func (h *TaxonomyHandler) GetPlatforms(c *gin.Context) {
	listNamed[models.Platform](h, c)
}

// GetDevelopers godoc
// @Summary      Get all developers
// @Tags         taxonomy
// @Produce      json
// @Param        q   query     string  false  "Name filter"
// @Success      200 {array}   NamedResponse
// @Failure      500 {object}  ErrorResponse
// @Router       /developers [get]
func (h *TaxonomyHandler) GetDevelopers(c *gin.Context) {
	listNamed[models.Developer](h, c)
}

// GetPublishers godoc
// @Summary      Get all publishers
// @Tags         taxonomy
// @Produce      json
// @Param        q   query     string  false  "Name filter"
// @Success      200 {array}   NamedResponse
// @Failure      500 {object}  ErrorResponse
// @Router       /publishers [get]
func (h *TaxonomyHandler) GetPublishers(c *gin.Context) {
	listNamed[models.Publisher](h, c)
}
