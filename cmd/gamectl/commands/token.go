package commands

import (
	"errors"
	"fmt"
	"time"

	"gamecatalog/backend/pkg/jwt"

	"github.com/spf13/cobra"
)

var tokenFlags struct {
	subject string
	role    string
	ttl     time.Duration
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.subject, "subject", "operator", "Token subject.")
	tokenCmd.Flags().StringVar(&tokenFlags.role, "role", jwt.RoleAdmin, "Role claim.")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "Token lifetime.")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token [--subject s] [--role admin] [--ttl 24h]",
	Short: "Mints a bearer token signed with JWT_SECRET.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET must be set")
		}
		token, err := jwt.GenerateToken(cfg.JWTSecret, tokenFlags.subject, tokenFlags.role, tokenFlags.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
