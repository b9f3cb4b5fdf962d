package populate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"gamecatalog/backend/internal/asset"
	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/store"
	"gamecatalog/backend/internal/storefront"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

var tracer = otel.Tracer("gamecatalog.populate")

// Topic is the hub topic progress events are broadcast on.
const Topic = "populate"

const (
	EventGame = "game"
	EventDone = "done"
)

// ScreenshotPlaceholder is the token upstream leaves in screenshot URLs for the rendition name.
const ScreenshotPlaceholder = "{formatter}"

type Catalog interface {
	Products(ctx context.Context, params url.Values) (*catalog.Page, error)
}

type Store interface {
	Ensure(ctx context.Context, kind models.Kind, name string) (models.Named, bool, error)
	Find(ctx context.Context, kind models.Kind, name string) (models.Named, error)
	FindGame(ctx context.Context, name string) (*models.Game, error)
	CreateGame(ctx context.Context, game *models.Game) (bool, error)
}

type Describer interface {
	Describe(ctx context.Context, slug string) (storefront.Description, error)
}

type Attacher interface {
	Attach(ctx context.Context, imageURL string, target asset.Target) error
}

type Notifier interface {
	Broadcast(topic string, event hub.Event)
}

type Options struct {
	// Offset and Limit select the products of a page to process.
	// A zero Limit processes every product from Offset on.
	Offset int
	Limit  int
	// Concurrency caps in-flight store/network calls per fan-out; zero is unbounded.
	Concurrency      int
	ScreenshotFormat string
	MaxScreenshots   int
	Now              func() time.Time
}

// Service imports catalog products into the content store.
type Service struct {
	catalog   Catalog
	store     Store
	describer Describer
	attacher  Attacher
	notifier  Notifier
	opts      Options
}

func NewService(c Catalog, s Store, d Describer, a Attacher, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		catalog:   c,
		store:     s,
		describer: d,
		attacher:  a,
		opts:      opts,
	}
}

// WithNotifier makes the service broadcast progress events on Topic.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

func (s *Service) notify(eventType string, payload any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Broadcast(Topic, hub.Event{Type: eventType, Payload: payload})
}

func (s *Service) group() *errgroup.Group {
	g := &errgroup.Group{}
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}
	return g
}

// Populate fetches one catalog page with params, imports the selected
// products and reports what happened to each of them. Only a catalog failure
// is returned as an error; per-entity failures are part of the report.
func (s *Service) Populate(ctx context.Context, params url.Values) (*Report, error) {
	ctx, span := tracer.Start(ctx, "Populate")
	defer span.End()

	page, err := s.catalog.Products(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog fetch failed")
		slog.ErrorContext(ctx, "failed to fetch catalog", "err", err)
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	selected := Select(page.Products, s.opts.Offset, s.opts.Limit)
	report := &Report{
		Upstream: page,
		Fetched:  len(page.Products),
		Selected: len(selected),
	}
	span.SetAttributes(
		attribute.Int("fetched", report.Fetched),
		attribute.Int("selected", report.Selected),
	)
	slog.InfoContext(ctx, "populating games", "fetched", report.Fetched, "selected", report.Selected)

	report.Related = s.MaterializeRelated(ctx, selected)
	report.Games = s.MaterializeGames(ctx, selected)
	report.tally()

	s.notify(EventDone, report.Totals)
	slog.InfoContext(
		ctx, "populate finished",
		"created", report.Totals.Created,
		"skipped", report.Totals.Skipped,
		"failed", report.Totals.Failed,
		"related_created", report.Related.Created,
		"related_failed", report.Related.Failed,
	)
	return report, nil
}

// Select returns products[offset:offset+limit], clamped to the slice bounds.
// A non-positive limit selects everything from offset on.
func Select(products []catalog.Product, offset, limit int) []catalog.Product {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(products) {
		return nil
	}
	end := len(products)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return products[offset:end]
}

// RelatedNames collects the distinct non-blank names per related kind across
// the batch, in first-seen order.
func RelatedNames(products []catalog.Product) map[models.Kind][]string {
	names := make(map[models.Kind][]string, len(models.RelatedKinds))
	seen := make(map[models.Kind]map[string]bool, len(models.RelatedKinds))
	add := func(kind models.Kind, name string) {
		if strings.TrimSpace(name) == "" {
			return
		}
		if seen[kind] == nil {
			seen[kind] = make(map[string]bool)
		}
		if seen[kind][name] {
			return
		}
		seen[kind][name] = true
		names[kind] = append(names[kind], name)
	}

	for _, p := range products {
		for _, name := range p.GenreNames() {
			add(models.KindCategory, name)
		}
		for _, name := range p.Developers {
			add(models.KindDeveloper, name)
		}
		for _, name := range p.OperatingSystems {
			add(models.KindPlatform, name)
		}
		for _, name := range p.Publishers {
			add(models.KindPublisher, name)
		}
	}
	return names
}

// MaterializeRelated ensures one record per distinct related name in the batch.
func (s *Service) MaterializeRelated(ctx context.Context, products []catalog.Product) RelatedReport {
	names := RelatedNames(products)

	var (
		mu     sync.Mutex
		report RelatedReport
	)
	g := s.group()
	for _, kind := range models.RelatedKinds {
		for _, name := range names[kind] {
			kind, name := kind, name
			g.Go(func() error {
				outcome := s.ensureRelated(ctx, kind, name)
				mu.Lock()
				defer mu.Unlock()
				report.add(outcome)
				return nil
			})
		}
	}
	_ = g.Wait()

	return report
}

func (s *Service) ensureRelated(ctx context.Context, kind models.Kind, name string) RelatedOutcome {
	outcome := RelatedOutcome{Kind: kind, Name: name}

	_, created, err := s.store.Ensure(ctx, kind, name)
	if err != nil {
		slog.WarnContext(ctx, "failed to ensure related entity", "kind", kind, "name", name, "err", err)
		outcome.Status = StatusFailed
		outcome.Reason = ReasonCreateFailed
		outcome.Error = err.Error()
		return outcome
	}

	if created {
		slog.DebugContext(ctx, "created related entity", "kind", kind, "name", name)
		outcome.Status = StatusCreated
	} else {
		outcome.Status = StatusExisted
	}
	return outcome
}

// MaterializeGames runs MaterializeGame for every product concurrently.
// Outcomes are returned in product order.
func (s *Service) MaterializeGames(ctx context.Context, products []catalog.Product) []GameOutcome {
	outcomes := make([]GameOutcome, len(products))

	g := s.group()
	for i, product := range products {
		i, product := i, product
		g.Go(func() error {
			outcomes[i] = s.MaterializeGame(ctx, product)
			s.notify(EventGame, outcomes[i])
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// MaterializeGame creates the game for a product unless one with the same
// title exists, then attaches its cover and screenshots.
func (s *Service) MaterializeGame(ctx context.Context, p catalog.Product) GameOutcome {
	ctx, span := tracer.Start(ctx, "MaterializeGame", trace.WithAttributes(attribute.String("title", p.Title)))
	defer span.End()

	outcome := GameOutcome{Title: p.Title, Slug: p.Slug}

	if strings.TrimSpace(p.Title) == "" {
		return s.fail(ctx, span, outcome, ReasonInvalidProduct, errors.New("product has no title"))
	}

	existing, err := s.store.FindGame(ctx, p.Title)
	switch {
	case err == nil:
		slog.DebugContext(ctx, "game already exists", "title", p.Title, "id", existing.ID)
		outcome.GameID = existing.ID
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonExists
		return outcome
	case !errors.Is(err, store.ErrNotFound):
		return s.fail(ctx, span, outcome, ReasonLookupFailed, err)
	}

	slog.InfoContext(ctx, "creating game", "title", p.Title)

	game, err := s.buildGame(ctx, p)
	if err != nil {
		return s.fail(ctx, span, outcome, ReasonRelatedFailed, err)
	}

	desc, err := s.describer.Describe(ctx, p.Slug)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch description", "title", p.Title, "slug", p.Slug, "err", err)
		outcome.warn(ReasonDescriptionFailed)
	} else {
		game.Description = desc.Long
		game.ShortDescription = desc.Short
	}

	created, err := s.store.CreateGame(ctx, game)
	if err != nil {
		return s.fail(ctx, span, outcome, ReasonCreateFailed, err)
	}
	if !created {
		// another run inserted the same title after our existence check
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonExists
		return outcome
	}

	outcome.GameID = game.ID
	outcome.Status = StatusCreated
	s.attachImages(ctx, p, game, &outcome)

	return outcome
}

func (s *Service) fail(ctx context.Context, span trace.Span, outcome GameOutcome, reason Reason, err error) GameOutcome {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(reason))
	slog.WarnContext(ctx, "failed to materialize game", "title", outcome.Title, "reason", reason, "err", err)

	outcome.Status = StatusFailed
	outcome.Reason = reason
	outcome.Error = err.Error()
	return outcome
}

func (s *Service) buildGame(ctx context.Context, p catalog.Product) (*models.Game, error) {
	categories, err := s.resolve(ctx, models.KindCategory, p.GenreNames())
	if err != nil {
		return nil, err
	}
	platforms, err := s.resolve(ctx, models.KindPlatform, p.OperatingSystems)
	if err != nil {
		return nil, err
	}
	developers, err := s.resolve(ctx, models.KindDeveloper, p.Developers)
	if err != nil {
		return nil, err
	}
	publishers, err := s.resolve(ctx, models.KindPublisher, p.Publishers)
	if err != nil {
		return nil, err
	}

	source, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode product: %w", err)
	}

	slug := p.Slug
	if slug == "" {
		slug = store.Slugify(p.Title)
	}
	published := s.opts.Now().UTC()

	game := &models.Game{
		Name:        p.Title,
		Slug:        slug,
		Price:       p.FinalAmount(),
		Rating:      "BR" + p.AgeRating(),
		PublishedAt: &published,
		Source:      datatypes.JSON(source),
		Categories:  typed[*models.Category](categories),
		Platforms:   typed[*models.Platform](platforms),
		Developers:  typed[*models.Developer](developers),
		Publishers:  typed[*models.Publisher](publishers),
	}
	if released, ok := p.ReleaseTime(); ok {
		game.ReleaseDate = &released
	}
	return game, nil
}

// resolve looks every name up again rather than trusting an earlier pass,
// creating any that are still missing.
func (s *Service) resolve(ctx context.Context, kind models.Kind, names []string) ([]models.Named, error) {
	refs := make([]models.Named, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" || seen[name] {
			continue
		}
		seen[name] = true

		ref, err := s.store.Find(ctx, kind, name)
		if errors.Is(err, store.ErrNotFound) {
			ref, _, err = s.store.Ensure(ctx, kind, name)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve %s %q: %w", kind, name, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func typed[T models.Named](refs []models.Named) []T {
	out := make([]T, 0, len(refs))
	for _, ref := range refs {
		if t, ok := ref.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Image is a remote image to attach to a game field.
type Image struct {
	URL   string
	Field models.AssetField
}

// Images lists the cover followed by at most limit screenshots, with the
// screenshot placeholder replaced by format.
func Images(p catalog.Product, format string, limit int) []Image {
	var images []Image
	if p.CoverHorizontal != "" {
		images = append(images, Image{URL: p.CoverHorizontal, Field: models.AssetFieldCover})
	}

	count := 0
	for _, shot := range p.Screenshots {
		if count >= limit {
			break
		}
		if shot == "" {
			continue
		}
		images = append(images, Image{
			URL:   strings.ReplaceAll(shot, ScreenshotPlaceholder, format),
			Field: models.AssetFieldGallery,
		})
		count++
	}
	return images
}

func imageName(slug string, img Image, index int) string {
	ext := path.Ext(asset.FileName(img.URL))
	if ext == "" {
		ext = ".jpg"
	}
	if img.Field == models.AssetFieldCover {
		return fmt.Sprintf("%s-cover%s", slug, ext)
	}
	return fmt.Sprintf("%s-%s-%d%s", slug, img.Field, index, ext)
}

// attachImages uploads the images one after another; a failed image does not
// stop the rest.
func (s *Service) attachImages(ctx context.Context, p catalog.Product, game *models.Game, outcome *GameOutcome) {
	images := Images(p, s.opts.ScreenshotFormat, s.opts.MaxScreenshots)
	for i, img := range images {
		target := asset.Target{
			Ref:   string(models.KindGame),
			RefID: game.ID,
			Field: img.Field,
			Name:  imageName(game.Slug, img, i),
		}
		if err := s.attacher.Attach(ctx, img.URL, target); err != nil {
			slog.WarnContext(ctx, "failed to attach image", "title", game.Name, "field", img.Field, "url", img.URL, "err", err)
			outcome.ImageFailures++
			outcome.warn(ReasonImageFailed)
			continue
		}
		outcome.Images++
	}
}
