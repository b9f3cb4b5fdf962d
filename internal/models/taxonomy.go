package models

import "gorm.io/gorm"

// Named is implemented by every entity that is keyed by a unique name.
type Named interface {
	GetID() uint
	GetName() string
	GetSlug() string
}

// Category represents a game genre (e.g., "Action", "RPG").
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;uniqueIndex;not null"`
	Slug string `gorm:"size:255;index;not null"`
}

// Platform represents an operating system a game runs on.
type Platform struct {
	gorm.Model
	Name string `gorm:"size:255;uniqueIndex;not null"`
	Slug string `gorm:"size:255;index;not null"`
}

// Developer represents a studio that developed a game.
type Developer struct {
	gorm.Model
	Name string `gorm:"size:255;uniqueIndex;not null"`
	Slug string `gorm:"size:255;index;not null"`
}

// Publisher represents a company that published a game.
type Publisher struct {
	gorm.Model
	Name string `gorm:"size:255;uniqueIndex;not null"`
	Slug string `gorm:"size:255;index;not null"`
}

func (c *Category) GetID() uint { return c.ID }
func (c *Category) GetName() string { return c.Name }
func (c *Category) GetSlug() string { return c.Slug }

func (p *Platform) GetID() uint { return p.ID }
func (p *Platform) GetName() string { return p.Name }
func (p *Platform) GetSlug() string { return p.Slug }

func (d *Developer) GetID() uint { return d.ID }
func (d *Developer) GetName() string { return d.Name }
func (d *Developer) GetSlug() string { return d.Slug }

func (p *Publisher) GetID() uint { return p.ID }
func (p *Publisher) GetName() string { return p.Name }
func (p *Publisher) GetSlug() string { return p.Slug }
