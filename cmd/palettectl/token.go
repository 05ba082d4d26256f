package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"palette-bridge/internal/server"
	"palette-bridge/internal/ui"
)

func newHashTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token <token>",
		Short: "Hash an admin token for config.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := server.HashToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			cmd.PrintErrln(ui.Muted("set it as ") + ui.Command("admin_token_hash") + ui.Muted(" in config.json"))
			return nil
		},
	}
}
