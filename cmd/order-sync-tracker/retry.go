package main

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

// NewRetryCmd creates the retry command with explicit dependencies.
func NewRetryCmd(client commandClient) *cobra.Command {
	if client == nil {
		panic("NewRetryCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "retry <orderId>",
		Short: "Retry a failed order",
		Long: `Ask the service to retry a failed order, then print the refreshed counts.

Only failed orders can be retried; the service rejects anything else.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCommand(c.Context(), client, domain.CommandRetry, args[0], c.OutOrStdout())
		},
	}
}

// retryCmd represents the retry command
var retryCmd = NewRetryCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(retryCmd)
}
