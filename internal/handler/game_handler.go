package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type NamedResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func newNamedResponses[T models.Named](items []T) []NamedResponse {
	responses := make([]NamedResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NamedResponse{ID: item.GetID(), Name: item.GetName(), Slug: item.GetSlug()})
	}
	return responses
}

type AssetResponse struct {
	ID       uint              `json:"id"`
	GameID   uint              `json:"game_id"`
	Field    models.AssetField `json:"field"`
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	MimeType string            `json:"mime_type"`
	Size     int64             `json:"size"`
}

func newAssetResponse(asset models.Asset) AssetResponse {
	return AssetResponse{
		ID:       asset.ID,
		GameID:   asset.GameID,
		Field:    asset.Field,
		Name:     asset.Name,
		URL:      asset.URL,
		MimeType: asset.MimeType,
		Size:     asset.Size,
	}
}

type GameResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Price            float64         `json:"price"`
	ReleaseDate      *time.Time      `json:"release_date,omitempty"`
	Rating           string          `json:"rating"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description,omitempty"`
	PublishedAt      *time.Time      `json:"published_at,omitempty"`
	CoverURL         string          `json:"cover_url,omitempty"`
	Categories       []NamedResponse `json:"categories"`
	Platforms        []NamedResponse `json:"platforms"`
	Developers       []NamedResponse `json:"developers"`
	Publishers       []NamedResponse `json:"publishers"`
	Assets           []AssetResponse `json:"assets,omitempty"`
	// Source is the raw upstream product, shown to admins only.
	Source json.RawMessage `json:"source,omitempty" swaggertype:"object"`
}

func newGameResponse(game models.Game) GameResponse {
	response := GameResponse{
		ID:               game.ID,
		Name:             game.Name,
		Slug:             game.Slug,
		Price:            game.Price,
		ReleaseDate:      game.ReleaseDate,
		Rating:           game.Rating,
		ShortDescription: game.ShortDescription,
		PublishedAt:      game.PublishedAt,
		Categories:       newNamedResponses(game.Categories),
		Platforms:        newNamedResponses(game.Platforms),
		Developers:       newNamedResponses(game.Developers),
		Publishers:       newNamedResponses(game.Publishers),
	}
	for _, asset := range game.Assets {
		if asset.Field == models.AssetFieldCover {
			// latest cover wins
			response.CoverURL = asset.URL
		}
	}
	return response
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// GameHandler serves the read side of the game catalog.
type GameHandler struct {
	db *gorm.DB
}

func NewGameHandler(db *gorm.DB) *GameHandler {
	return &GameHandler{db: db}
}

func preloadRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories").Preload("Platforms").Preload("Developers").Preload("Publishers")
}

func preloadAssets(db *gorm.DB) *gorm.DB {
	return db.Preload("Assets", func(db *gorm.DB) *gorm.DB { return db.Order("assets.id") })
}

// GetGames godoc
// @Summary      Get a list of games
// @Description  Retrieves a paginated list of games, with optional filtering by name and category.
// @Tags         games
// @Produce      json
// @Param        q        query     string  false  "Search query for game name"
// @Param        category query     string  false  "Category slug or name"
// @Param        page     query     int     false  "Page number" default(1)
// @Param        limit    query     int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedGameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	page, limit := pageParams(c)
	searchQuery := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))

	dbQuery := h.db.WithContext(c.Request.Context()).Model(&models.Game{})

	// Filter by name
	if searchQuery != "" {
		dbQuery = dbQuery.Where("LOWER(games.name) LIKE ?", "%"+strings.ToLower(searchQuery)+"%")
	}

	// Filter by category; a subquery keeps the count free of GROUP BY
	if category != "" {
		gameIDs := h.db.Table("game_categories").
			Select("game_categories.game_id").
			Joins("JOIN categories ON categories.id = game_categories.category_id").
			Where("categories.slug = ? OR LOWER(categories.name) = ?", category, strings.ToLower(category))
		dbQuery = dbQuery.Where("games.id IN (?)", gameIDs)
	}

	games, totalItems, err := Paginate[models.Game](dbQuery, page, limit, preloadRelations, preloadAssets, func(db *gorm.DB) *gorm.DB {
		return db.Order("games.id")
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves a game with its description, relations and assets. Admin callers also get the raw upstream product.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var game models.Game
	err = h.db.WithContext(c.Request.Context()).
		Scopes(preloadRelations, preloadAssets).
		First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}

	response := newGameResponse(game)
	response.Description = game.Description
	response.Assets = make([]AssetResponse, 0, len(game.Assets))
	for _, asset := range game.Assets {
		response.Assets = append(response.Assets, newAssetResponse(asset))
	}
	if auth.IsAdmin(c) && len(game.Source) > 0 {
		response.Source = json.RawMessage(game.Source)
	}

	c.JSON(http.StatusOK, response)
}
