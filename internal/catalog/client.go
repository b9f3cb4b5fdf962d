package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrUnexpectedStatus = errors.New("unexpected catalog response status")

// DefaultQuery is sent with every listing request; caller parameters override it.
var DefaultQuery = url.Values{
	"limit": {"48"},
	"order": {"desc:trending"},
}

type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the upstream catalog listing endpoint.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New().
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &Client{http: client, baseURL: opts.BaseURL}
}

// Query overlays the caller's parameters on DefaultQuery.
func Query(params url.Values) url.Values {
	query := url.Values{}
	for key, values := range DefaultQuery {
		query[key] = append([]string(nil), values...)
	}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	return query
}

// Products fetches one listing page using params as the query string.
func (c *Client) Products(ctx context.Context, params url.Values) (*Page, error) {
	query := Query(params)

	slog.DebugContext(ctx, "fetching catalog page", "url", c.baseURL, "query", query.Encode())

	var page Page
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetResult(&page).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, res.StatusCode(), res.Status())
	}

	slog.DebugContext(ctx, "fetched catalog page", "products", len(page.Products), "pages", page.Pages)
	return &page, nil
}
