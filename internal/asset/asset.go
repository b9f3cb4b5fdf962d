package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strconv"
	"time"

	"gamecatalog/backend/internal/models"

	"github.com/go-resty/resty/v2"
)

var ErrUnexpectedStatus = errors.New("unexpected asset response status")

// Target identifies the record and field an image is attached to.
type Target struct {
	Ref   string // entity kind, e.g. "game"
	RefID uint
	Field models.AssetField
	Name  string // file name presented to the upload endpoint
}

type ClientOptions struct {
	UploadURL string
	Token     string
	Timeout   time.Duration
}

// Client downloads remote images and uploads them to the asset endpoint.
type Client struct {
	http      *resty.Client
	uploadURL string
	token     string
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &Client{http: client, uploadURL: opts.UploadURL, token: opts.Token}
}

// Attach downloads imageURL and uploads it as target.
func (c *Client) Attach(ctx context.Context, imageURL string, target Target) error {
	body, err := c.download(ctx, imageURL)
	if err != nil {
		return err
	}

	name := target.Name
	if name == "" {
		name = FileName(imageURL)
	}

	req := c.http.R().
		SetContext(ctx).
		SetFileReader("files", name, bytes.NewReader(body)).
		SetFormData(map[string]string{
			"ref":   target.Ref,
			"refId": strconv.FormatUint(uint64(target.RefID), 10),
			"field": string(target.Field),
		})
	if c.token != "" {
		req.SetAuthToken(c.token)
	}

	res, err := req.Post(c.uploadURL)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if res.IsError() {
		return fmt.Errorf("%w: upload of %s returned %d: %s", ErrUnexpectedStatus, name, res.StatusCode(), res.String())
	}

	slog.DebugContext(ctx, "attached image", "ref", target.Ref, "ref_id", target.RefID, "field", target.Field, "name", name, "bytes", len(body))
	return nil
}

func (c *Client) download(ctx context.Context, imageURL string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", imageURL, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: download of %s returned %d", ErrUnexpectedStatus, imageURL, res.StatusCode())
	}
	return res.Body(), nil
}

// FileName is the last path element of a URL, without its query string.
func FileName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" {
		return "image"
	}
	name := path.Base(parsed.Path)
	if name == "/" || name == "." {
		return "image"
	}
	return name
}
