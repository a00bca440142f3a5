package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/app"
)

const tuiCommandLong = `Interactive dashboard for order synchronization.

USAGE:
    order-sync-tracker tui

KEY BINDINGS:
    a / p / f   Show all, pending or failed orders
    c / C       Cycle the channel filter forward or back
    1..9        Sync the n-th configured channel
    r           Retry the selected failed order
    R           Refresh now
    s           Toggle the stats view
    j/k         Move down/up
    ?           Toggle key help
    q           Quit`

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client app.Client) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			model, err := client.CreateModel()
			if err != nil {
				return fmt.Errorf("create dashboard: %w", err)
			}
			if err := client.RunProgram(model); err != nil {
				return cmd.ErrReported
			}
			return nil
		},
	}
}

// tuiCmd represents the tui command
var tuiCmd = NewTUICmd(tuiClient)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
	cmd.RootCmd.RunE = tuiCmd.RunE
}
