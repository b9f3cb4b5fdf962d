package handler

import (
	"gamecatalog/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// Routes groups the handlers served under /api/v1.
type Routes struct {
	Games     *GameHandler
	Taxonomy  *TaxonomyHandler
	Populate  *PopulateHandler
	Upload    *UploadHandler
	JWTSecret string
}

// Register mounts every route on apiV1.
func (r Routes) Register(apiV1 *gin.RouterGroup) {
	// Public read routes; an admin token additionally unlocks raw source data
	public := apiV1.Group("")
	public.Use(auth.OptionalAuthMiddleware(r.JWTSecret))
	{
		public.GET("/games", r.Games.GetGames)
		public.GET("/games/:id", r.Games.GetGameByID)
		public.GET("/categories", r.Taxonomy.GetCategories)
		public.GET("/platforms", r.Taxonomy.GetPlatforms)
		public.GET("/developers", r.Taxonomy.GetDevelopers)
		public.GET("/publishers", r.Taxonomy.GetPublishers)
	}

	admin := apiV1.Group("")
	admin.Use(auth.AuthMiddleware(r.JWTSecret), auth.AdminMiddleware())
	{
		admin.POST("/upload", r.Upload.Upload)
		admin.POST("/admin/games/populate", r.Populate.Populate)
		admin.GET("/admin/games/populate/events", r.Populate.Events)
	}
}
