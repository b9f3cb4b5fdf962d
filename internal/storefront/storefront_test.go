package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const pageFixture = `<!doctype html>
<html>
<head><title>Foo Bar on GOG.com</title></head>
<body>
	<div class="productcard">
		<div class="description">
			<p><b>Foo Bar</b> is a fast-paced action game set in a world of clockwork machines and crumbling empires, where every decision ripples through the story.</p>
			<p>Explore twelve hand-crafted regions, recruit a crew of misfits and uncover the secret behind the Great Stopping.</p>
		</div>
	</div>
</body>
</html>`

func TestPageSlug(t *testing.T) {
	require.Equal(t, "foo_bar", PageSlug("foo-bar"))
	require.Equal(t, "the_witcher_3_wild_hunt", PageSlug("The-Witcher-3-Wild-Hunt"))
	require.Equal(t, "plain", PageSlug("plain"))
}

func TestParseDescription(t *testing.T) {
	desc, err := ParseDescription([]byte(pageFixture))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(desc.Long, "<p><b>Foo Bar</b>"))
	require.True(t, strings.HasSuffix(desc.Long, "Great Stopping.</p>"))

	require.LessOrEqual(t, utf8.RuneCountInString(desc.Short), ShortDescriptionLength)
	require.Equal(t, ShortDescriptionLength, utf8.RuneCountInString(desc.Short))

	// the short description is a prefix of the long description's text
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(desc.Long))
	require.NoError(t, err)
	plain := strings.TrimSpace(doc.Text())
	require.True(t, strings.HasPrefix(plain, desc.Short))
}

func TestParseDescriptionShortText(t *testing.T) {
	desc, err := ParseDescription([]byte(`<div class="description">  Tiny — ünïcode  </div>`))
	require.NoError(t, err)
	require.Equal(t, "Tiny — ünïcode", desc.Long)
	require.Equal(t, "Tiny — ünïcode", desc.Short)
}

func TestParseDescriptionMissing(t *testing.T) {
	_, err := ParseDescription([]byte(`<html><body><div class="other">nothing</div></body></html>`))
	require.ErrorIs(t, err, ErrDescriptionMissing)
}

func TestDescribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/en/game/foo_bar":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(pageFixture))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL + "/"})

	desc, err := client.Describe(context.Background(), "Foo-Bar")
	require.NoError(t, err)
	require.NotEmpty(t, desc.Long)
	require.NotEmpty(t, desc.Short)

	_, err = client.Describe(context.Background(), "missing-game")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}
