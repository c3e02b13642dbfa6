package cli

import (
	"fmt"
	"time"

	"csv-to-json/common"

	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.LoadServerConfig(cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			token, err := common.IssueToken(cfg.JWTSecret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("jwt-secret", "", "HS256 secret shared with the server (or CSV2JSON_JWT_SECRET)")
	f.StringVar(&subject, "subject", "", "Token subject")
	f.DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
