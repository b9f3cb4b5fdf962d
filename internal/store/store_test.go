package store

import (
	"context"
	"sync"
	"testing"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"Action", "action"},
		{"Role-playing", "role-playing"},
		{"Point & Click", "point-and-click"},
		{"Pokémon Ranger", "pokemon-ranger"},
		{"  The Witcher 3: Wild Hunt ", "the-witcher-3-wild-hunt"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, Slugify(test.name), test.name)
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	first, created, err := s.Ensure(ctx, models.KindCategory, "Action")
	require.NoError(t, err)
	require.True(t, created)
	require.NotZero(t, first.GetID())
	require.Equal(t, "action", first.GetSlug())

	second, created, err := s.Ensure(ctx, models.KindCategory, "Action")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.GetID(), second.GetID())

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestEnsureKindsAreIndependent(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	_, created, err := s.Ensure(ctx, models.KindDeveloper, "Acme")
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = s.Ensure(ctx, models.KindPublisher, "Acme")
	require.NoError(t, err)
	require.True(t, created)

	dev, err := s.Find(ctx, models.KindDeveloper, "Acme")
	require.NoError(t, err)
	require.IsType(t, &models.Developer{}, dev)

	pub, err := s.Find(ctx, models.KindPublisher, "Acme")
	require.NoError(t, err)
	require.IsType(t, &models.Publisher{}, pub)
}

func TestEnsureConcurrentCallersCreateOneRow(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[uint]bool{}
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			row, ok, err := s.Ensure(ctx, models.KindPlatform, "Windows")
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[row.GetID()] = true
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Len(t, ids, 1)

	var count int64
	require.NoError(t, db.Model(&models.Platform{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestEnsureRejectsEmptyName(t *testing.T) {
	s := New(testutil.NewDB(t))

	_, _, err := s.Ensure(context.Background(), models.KindCategory, "  ")
	require.Error(t, err)
}

func TestFindMissing(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	_, err := s.Find(ctx, models.KindCategory, "Nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindGame(ctx, "Nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateGameWithRelations(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	category, _, err := s.Ensure(ctx, models.KindCategory, "Action")
	require.NoError(t, err)
	platform, _, err := s.Ensure(ctx, models.KindPlatform, "Windows")
	require.NoError(t, err)

	game := &models.Game{
		Name:       "Foo",
		Slug:       "foo-bar",
		Price:      9.99,
		Rating:     "BR18",
		Categories: []*models.Category{category.(*models.Category)},
		Platforms:  []*models.Platform{platform.(*models.Platform)},
	}
	created, err := s.CreateGame(ctx, game)
	require.NoError(t, err)
	require.True(t, created)
	require.NotZero(t, game.ID)

	var stored models.Game
	err = db.Preload("Categories").Preload("Platforms").First(&stored, game.ID).Error
	require.NoError(t, err)
	require.Equal(t, "foo-bar", stored.Slug)
	require.Len(t, stored.Categories, 1)
	require.Equal(t, "Action", stored.Categories[0].Name)
	require.Len(t, stored.Platforms, 1)
	require.Equal(t, "Windows", stored.Platforms[0].Name)

	found, err := s.FindGame(ctx, "Foo")
	require.NoError(t, err)
	require.Equal(t, game.ID, found.ID)
}

func TestCreateGameDuplicateName(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	created, err := s.CreateGame(ctx, &models.Game{Name: "Foo", Slug: "foo"})
	require.NoError(t, err)
	require.True(t, created)

	dup := &models.Game{Name: "Foo", Slug: "foo-again"}
	created, err = s.CreateGame(ctx, dup)
	require.NoError(t, err)
	require.False(t, created)
	require.Zero(t, dup.ID)

	var count int64
	require.NoError(t, db.Model(&models.Game{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
