package storefront

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ShortDescriptionLength is the maximum length, in characters, of Description.Short.
const ShortDescriptionLength = 160

var (
	ErrUnexpectedStatus   = errors.New("unexpected storefront response status")
	ErrDescriptionMissing = errors.New("storefront page has no description")
)

var tracer = otel.Tracer("gamecatalog.storefront")

const descriptionSelector = "div.description"

// Description is the marketing copy scraped from a storefront page.
type Description struct {
	Long  string // inner HTML
	Short string // plain text
}

type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
}

// Client scrapes game pages of the storefront.
type Client struct {
	http *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Accept", "text/html")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &Client{http: client}
}

// PageSlug converts a catalog slug to the storefront's URL form.
func PageSlug(slug string) string {
	return strings.ToLower(strings.ReplaceAll(slug, "-", "_"))
}

// Describe fetches the storefront page for the catalog slug and extracts its description.
func (c *Client) Describe(ctx context.Context, slug string) (Description, error) {
	ctx, span := tracer.Start(ctx, "Describe")
	defer span.End()

	path := "/en/game/" + PageSlug(slug)
	span.SetAttributes(attribute.String("path", path))

	res, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return Description{}, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		return Description{}, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, path, res.StatusCode())
	}

	desc, err := ParseDescription(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}

	slog.DebugContext(ctx, "scraped description", "path", path, "length", len(desc.Long))
	return desc, nil
}

// ParseDescription extracts the description element from a storefront document.
func ParseDescription(body []byte) (Description, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return Description{}, err
	}

	sel := doc.Find(descriptionSelector).First()
	if sel.Length() == 0 {
		return Description{}, ErrDescriptionMissing
	}

	inner, err := sel.Html()
	if err != nil {
		return Description{}, err
	}

	return Description{
		Long:  strings.TrimSpace(inner),
		Short: truncate(strings.TrimSpace(sel.Text()), ShortDescriptionLength),
	}, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
