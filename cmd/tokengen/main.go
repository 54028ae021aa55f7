// Command tokengen issues an access token for a user id, signed with the
// server's secret key.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/vitalkeeper/internal/flagx"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/auth"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/config"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadConfig()

	root := &cobra.Command{
		Use:           "tokengen <user-id>",
		Short:         "Issue a VitalKeeper access token",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := auth.GenerateToken(args[0], []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.Flags()))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
