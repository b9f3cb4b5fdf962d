package commands

import (
	"bytes"
	"strings"
	"testing"

	"gamecatalog/backend/internal/populate"
	"gamecatalog/backend/pkg/jwt"

	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	params, err := ParseQuery([]string{"limit=10", "order=desc:trending", "tags=rpg", "tags=indie", "empty="})
	require.NoError(t, err)
	require.Equal(t, "10", params.Get("limit"))
	require.Equal(t, "desc:trending", params.Get("order"))
	require.Equal(t, []string{"rpg", "indie"}, params["tags"])
	require.Equal(t, []string{""}, params["empty"])

	_, err = ParseQuery([]string{"novalue"})
	require.Error(t, err)
	_, err = ParseQuery([]string{"=x"})
	require.Error(t, err)
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, &populate.Report{
		Fetched:  3,
		Selected: 2,
		Games: []populate.GameOutcome{
			{Title: "Foo", Status: populate.StatusCreated, Images: 3, ImageFailures: 1, Warnings: []populate.Reason{populate.ReasonImageFailed}},
			{Title: "Bar", Status: populate.StatusSkipped, Reason: populate.ReasonExists},
		},
		Totals: populate.Totals{Created: 1, Skipped: 1},
	})

	out := buf.String()
	require.Contains(t, out, "Foo")
	require.Contains(t, out, "3 (1 failed)")
	require.Contains(t, out, "image_failed")
	require.Contains(t, out, "exists")
	require.Contains(t, strings.ToLower(out), "1 created")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--config-dir", t.TempDir(), "--subject", "ops"})

	require.NoError(t, rootCmd.Execute())

	claims, err := jwt.ParseToken("cli-secret", strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Equal(t, "ops", claims.Subject)
	require.Equal(t, jwt.RoleAdmin, claims.Role)
}
