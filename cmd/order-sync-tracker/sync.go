package main

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// NewSyncCmd creates the sync command with explicit dependencies.
func NewSyncCmd(client commandClient) *cobra.Command {
	if client == nil {
		panic("NewSyncCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "sync <channel>",
		Short: "Pull new orders from one sales channel",
		Long: `Ask the service to pull new orders from one sales channel, then print
the refreshed counts for that channel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCommand(c.Context(), client, domain.CommandSync, args[0], c.OutOrStdout())
		},
	}
}

// syncCmd represents the sync command
var syncCmd = NewSyncCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(syncCmd)
}
