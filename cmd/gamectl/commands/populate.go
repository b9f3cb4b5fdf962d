package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"gamecatalog/backend/internal/app"
	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/populate"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	populateQuery []string
	populateJSON  bool
)

func init() {
	populateCmd.Flags().StringArrayVarP(&populateQuery, "query", "q", nil, "Upstream catalog query parameter as key=value, repeatable.")
	populateCmd.Flags().IntVar(&cfgOverrides.offset, "offset", -1, "Overrides POPULATE_OFFSET.")
	populateCmd.Flags().IntVar(&cfgOverrides.limit, "limit", -1, "Overrides POPULATE_LIMIT.")
	populateCmd.Flags().BoolVar(&populateJSON, "json", false, "Print the report as JSON.")
	rootCmd.AddCommand(populateCmd)
}

var cfgOverrides struct {
	offset int
	limit  int
}

var populateCmd = &cobra.Command{
	Use:   "populate [--query key=value ...]",
	Short: "Fetches one catalog page and imports the selected games.",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := ParseQuery(populateQuery)
		if err != nil {
			return err
		}
		if cfgOverrides.offset >= 0 {
			cfg.PopulateOffset = cfgOverrides.offset
		}
		if cfgOverrides.limit >= 0 {
			cfg.PopulateLimit = cfgOverrides.limit
		}

		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close(db)

		service, err := app.NewPopulateService(cfg, db)
		if err != nil {
			return err
		}

		report, err := service.Populate(cmd.Context(), params)
		if err != nil {
			return err
		}

		if populateJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		RenderReport(cmd.OutOrStdout(), report)
		return nil
	},
}

// ParseQuery turns key=value pairs into upstream query parameters.
func ParseQuery(pairs []string) (url.Values, error) {
	params := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query %q, expected key=value", pair)
		}
		params.Add(key, value)
	}
	return params, nil
}

// RenderReport prints one row per game followed by the totals.
func RenderReport(w io.Writer, report *populate.Report) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Title", "Status", "Reason", "Images", "Warnings"})
	for _, game := range report.Games {
		warnings := make([]string, 0, len(game.Warnings))
		for _, warning := range game.Warnings {
			warnings = append(warnings, string(warning))
		}
		images := fmt.Sprintf("%d", game.Images)
		if game.ImageFailures > 0 {
			images = fmt.Sprintf("%d (%d failed)", game.Images, game.ImageFailures)
		}
		t.AppendRow(table.Row{game.Title, game.Status, game.Reason, images, strings.Join(warnings, ", ")})
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d fetched, %d selected", report.Fetched, report.Selected),
		fmt.Sprintf("%d created", report.Totals.Created),
		fmt.Sprintf("%d skipped", report.Totals.Skipped),
		fmt.Sprintf("%d failed", report.Totals.Failed),
		fmt.Sprintf("related: %d new, %d failed", report.Related.Created, report.Related.Failed),
	})
	t.Render()
}
