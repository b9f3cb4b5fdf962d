package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"gamecatalog/backend/internal/media"
	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadHandler stores image files for games.
type UploadHandler struct {
	db      *gorm.DB
	storage *media.Storage
}

func NewUploadHandler(db *gorm.DB, storage *media.Storage) *UploadHandler {
	return &UploadHandler{db: db, storage: storage}
}

// Upload godoc
// @Summary      Upload game images
// @Description  Stores the uploaded files and attaches them to a game field.
// @Tags         admin-assets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        ref    formData  string  true  "Owner kind, must be game"
// @Param        refId  formData  int     true  "Game ID"
// @Param        field  formData  string  true  "cover or gallery"
// @Param        files  formData  file    true  "Image file"
// @Success      201  {array}   AssetResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      413  {object}  ErrorResponse "File too large"
// @Failure      415  {object}  ErrorResponse "Not an image"
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if ref := c.PostForm("ref"); ref != string(models.KindGame) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ref must be game"})
		return
	}

	refID, err := strconv.ParseUint(c.PostForm("refId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid refId"})
		return
	}

	field := models.AssetField(c.PostForm("field"))
	if !field.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field must be cover or gallery"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files is required"})
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var game models.Game
	if err := db.First(&game, refID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game"})
		return
	}

	dir := fmt.Sprintf("games/%d/%s", game.ID, field)
	response := make([]AssetResponse, 0, len(form.File["files"]))
	for _, fileHeader := range form.File["files"] {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
			return
		}
		stored, err := h.storage.Save(dir, fileHeader.Filename, file)
		file.Close()
		if err != nil {
			c.JSON(uploadErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		asset := models.Asset{
			GameID:   game.ID,
			Field:    field,
			Name:     path.Base(stored.Path),
			Path:     stored.Path,
			URL:      stored.URL,
			MimeType: stored.MimeType,
			Size:     stored.Size,
		}
		if err := db.Create(&asset).Error; err != nil {
			slog.Error("failed to record asset", "game_id", game.ID, "path", stored.Path, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record asset"})
			return
		}
		response = append(response, newAssetResponse(asset))
	}

	c.JSON(http.StatusCreated, response)
}

func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, media.ErrEmpty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
