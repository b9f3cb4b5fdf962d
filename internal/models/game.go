package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game represents a game imported from the upstream catalog.
type Game struct {
	gorm.Model
	Name             string `gorm:"size:255;uniqueIndex;not null"`
	Slug             string `gorm:"size:255;index;not null"`
	Price            float64
	ReleaseDate      *time.Time
	Rating           string `gorm:"size:50"`
	Description      string
	ShortDescription string `gorm:"size:512"`
	PublishedAt      *time.Time
	Source           datatypes.JSON // upstream product as received

	Categories []*Category  `gorm:"many2many:game_categories;"`
	Platforms  []*Platform  `gorm:"many2many:game_platforms;"`
	Developers []*Developer `gorm:"many2many:game_developers;"`
	Publishers []*Publisher `gorm:"many2many:game_publishers;"`
	Assets     []Asset      `gorm:"foreignKey:GameID"`
}

func (g *Game) GetID() uint { return g.ID }
func (g *Game) GetName() string { return g.Name }
func (g *Game) GetSlug() string { return g.Slug }
