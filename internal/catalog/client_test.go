package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const pageFixture = `{
	"pages": 12,
	"productCount": "560",
	"products": [
		{
			"id": "1",
			"title": "Foo",
			"slug": "foo-bar",
			"price": {"finalMoney": {"amount": "9.99", "currency": "USD"}},
			"releaseDate": "2020.01.01",
			"genres": [{"name": "Action", "slug": "action"}],
			"operatingSystems": ["windows", "osx"],
			"developers": ["Acme"],
			"publishers": ["Acme Publishing"],
			"ratings": [{"name": "BR", "ageRating": 18}],
			"coverHorizontal": "https://images.example/cover.jpg",
			"screenshots": ["https://images.example/shot_{formatter}.jpg"]
		},
		{
			"title": "Bare",
			"slug": "bare"
		}
	]
}`

func TestProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/catalog" {
			t.Errorf("Expected path /v1/catalog, got %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("Expected method GET, got %s", r.Method)
		}
		query := r.URL.Query()
		if query.Get("limit") != "10" {
			t.Errorf("Expected caller limit 10, got %s", query.Get("limit"))
		}
		if query.Get("order") != "desc:trending" {
			t.Errorf("Expected default order, got %s", query.Get("order"))
		}
		if query.Get("page") != "2" {
			t.Errorf("Expected forwarded page 2, got %s", query.Get("page"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pageFixture))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL + "/v1/catalog", Timeout: time.Second})
	page, err := client.Products(context.Background(), url.Values{"limit": {"10"}, "page": {"2"}})
	require.NoError(t, err)

	require.Equal(t, 12, page.Pages)
	require.Len(t, page.Products, 2)

	foo := page.Products[0]
	require.Equal(t, "Foo", foo.Title)
	require.Equal(t, 9.99, foo.FinalAmount())
	require.Equal(t, "18", foo.AgeRating())
	require.Equal(t, []string{"Action"}, foo.GenreNames())
	require.Equal(t, []string{"windows", "osx"}, foo.OperatingSystems)

	released, ok := foo.ReleaseTime()
	require.True(t, ok)
	require.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), released)

	bare := page.Products[1]
	require.Zero(t, bare.FinalAmount())
	require.Equal(t, "0", bare.AgeRating())
	_, ok = bare.ReleaseTime()
	require.False(t, ok)
}

func TestProductsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL})
	_, err := client.Products(context.Background(), nil)
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestQueryDoesNotMutateDefaults(t *testing.T) {
	query := Query(url.Values{"order": {"asc:title"}})
	require.Equal(t, "asc:title", query.Get("order"))
	require.Equal(t, "48", query.Get("limit"))
	require.Equal(t, "desc:trending", DefaultQuery.Get("order"))
}

func TestScalarMarshal(t *testing.T) {
	require.Equal(t, Scalar("999"), mustScalar(t, `999`))
	require.Equal(t, Scalar("9.99"), mustScalar(t, `"9.99"`))
	require.Equal(t, Scalar(""), mustScalar(t, `null`))

	out, err := Scalar("18").MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `18`, string(out))

	out, err = Scalar("18+").MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"18+"`, string(out))
}

func mustScalar(t *testing.T, raw string) Scalar {
	t.Helper()
	var s Scalar
	require.NoError(t, s.UnmarshalJSON([]byte(raw)))
	return s
}
