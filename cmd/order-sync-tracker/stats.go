package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/render"
)

type statsClient interface {
	FetchStats(ctx context.Context) ([]domain.StatRecord, error)
}

// NewStatsCmd creates the stats command with explicit dependencies.
func NewStatsCmd(client statsClient) *cobra.Command {
	if client == nil {
		panic("NewStatsCmd: client dependency cannot be nil")
	}

	var format string
	var width int
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the service's counts per channel and status",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if format != "cards" && format != "json" {
				return fmt.Errorf("invalid format: %s (must be cards or json)", format)
			}
			records, err := client.FetchStats(c.Context())
			if err != nil {
				return fmt.Errorf("stats: failed to fetch stats: %w", err)
			}
			if format == "json" {
				enc := json.NewEncoder(c.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			fmt.Fprintln(c.OutOrStdout(), render.StatsCards(domain.GroupStats(records), width))
			return nil
		},
	}
	statsCmd.Flags().StringVar(&format, "format", "cards", "Output format: cards, json")
	statsCmd.Flags().IntVar(&width, "width", render.DefaultWidth, "Layout width in columns")

	return statsCmd
}

// statsCmd represents the stats command
var statsCmd = NewStatsCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(statsCmd)
}
