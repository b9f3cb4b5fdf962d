package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gamecatalog/backend/internal/app"
	"gamecatalog/backend/internal/config"

	"github.com/spf13/cobra"
)

var (
	configDir string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gamectl",
	Short: "gamectl imports games from the GOG catalog and mints operator tokens.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configDir)
		if err != nil {
			return err
		}
		cfg = loaded
		slog.SetDefault(app.NewLogger(cfg, os.Stderr))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
