package models

import "gorm.io/gorm"

// AssetField names the game relation an uploaded file is attached to.
type AssetField string

const (
	AssetFieldCover   AssetField = "cover"
	AssetFieldGallery AssetField = "gallery"
)

// Valid reports whether f is a known field.
func (f AssetField) Valid() bool {
	return f == AssetFieldCover || f == AssetFieldGallery
}

// Asset is a stored image attached to a game.
type Asset struct {
	gorm.Model
	GameID   uint       `gorm:"not null;index"`
	Field    AssetField `gorm:"size:20;not null"`
	Name     string     `gorm:"size:255;not null"`
	Path     string     `gorm:"size:512;not null"`
	URL      string     `gorm:"size:1024;not null"`
	MimeType string     `gorm:"size:100"`
	Size     int64
}
