package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamecatalog/backend/internal/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// all name-keyed tables carry a unique index on name
var onConflictName = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}},
	DoNothing: true,
}

// Store is the content store used by ingestion.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Slugify derives the lower-case ASCII slug stored next to a name.
func Slugify(name string) string {
	return slug.Make(name)
}

// Ensure returns the record of the given kind named name, inserting it first
// when absent. The insert and the conflict check are a single statement, so
// concurrent callers for the same name never produce two rows.
func (s *Store) Ensure(ctx context.Context, kind models.Kind, name string) (models.Named, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, fmt.Errorf("ensure %s: empty name", kind)
	}

	row, err := kind.New(name, Slugify(name))
	if err != nil {
		return nil, false, err
	}

	res := s.db.WithContext(ctx).Clauses(onConflictName).Create(row)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to create %s %q: %w", kind, name, res.Error)
	}
	if res.RowsAffected > 0 {
		return row, true, nil
	}

	existing, err := s.find(ctx, s.db.Unscoped(), kind, name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Find looks up a record by exact name. It returns ErrNotFound when absent.
func (s *Store) Find(ctx context.Context, kind models.Kind, name string) (models.Named, error) {
	return s.find(ctx, s.db, kind, name)
}

func (s *Store) find(ctx context.Context, db *gorm.DB, kind models.Kind, name string) (models.Named, error) {
	row, err := kind.New("", "")
	if err != nil {
		return nil, err
	}
	err = db.WithContext(ctx).Where("name = ?", name).First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %q: %w", kind, name, err)
	}
	return row, nil
}

// FindGame looks up a game by exact name. It returns ErrNotFound when absent.
func (s *Store) FindGame(ctx context.Context, name string) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("game %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %q: %w", name, err)
	}
	return &game, nil
}

// CreateGame inserts game together with its relations unless a game with the
// same name already exists, in which case it reports false and writes nothing.
func (s *Store) CreateGame(ctx context.Context, game *models.Game) (bool, error) {
	categories, platforms, developers, publishers := game.Categories, game.Platforms, game.Developers, game.Publishers
	game.Categories, game.Platforms, game.Developers, game.Publishers = nil, nil, nil, nil

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Omit(clause.Associations).Clauses(onConflictName).Create(game)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true

		relations := []struct {
			name   string
			values any
			count  int
		}{
			{"Categories", categories, len(categories)},
			{"Platforms", platforms, len(platforms)},
			{"Developers", developers, len(developers)},
			{"Publishers", publishers, len(publishers)},
		}
		for _, rel := range relations {
			if rel.count == 0 {
				continue
			}
			if err := tx.Model(game).Association(rel.name).Append(rel.values); err != nil {
				return fmt.Errorf("link %s: %w", strings.ToLower(rel.name), err)
			}
		}
		return nil
	})
	game.Categories, game.Platforms, game.Developers, game.Publishers = categories, platforms, developers, publishers
	if err != nil || !created {
		game.ID = 0
	}
	if err != nil {
		return false, fmt.Errorf("failed to create game %q: %w", game.Name, err)
	}
	return created, nil
}
