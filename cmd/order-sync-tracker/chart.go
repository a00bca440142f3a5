package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/render"
)

// NewChartCmd creates the chart command with explicit dependencies.
func NewChartCmd(client ordersClient) *cobra.Command {
	if client == nil {
		panic("NewChartCmd: client dependency cannot be nil")
	}

	var width int
	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Show per-channel status counts as a bar chart",
		Long: `Show a stacked bar per channel with success, failed and pending counts.

Bars are scaled to the channel with the most orders.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			orders, err := client.FetchOrders(c.Context(), ordersync.Query{})
			if err != nil {
				return fmt.Errorf("chart: failed to fetch orders: %w", err)
			}
			out := c.OutOrStdout()
			fmt.Fprintln(out, render.Title(domain.Summarize(orders)))
			fmt.Fprintln(out, render.Chart(domain.Aggregate(orders), width))
			return nil
		},
	}
	chartCmd.Flags().IntVar(&width, "width", render.DefaultWidth, "Chart width in columns")

	return chartCmd
}

// chartCmd represents the chart command
var chartCmd = NewChartCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(chartCmd)
}
