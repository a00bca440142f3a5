package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/render"
)

type ordersClient interface {
	FetchOrders(ctx context.Context, query ordersync.Query) (domain.Collection, error)
}

const listCommandLong = `List orders with filters and formats.

USAGE:
    order-sync-tracker list [OPTIONS]

OPTIONS:
    --pending            Show only pending orders
    --failed             Show only failed orders
    --channel <name>     Show only orders of one channel ("all" for every channel)
    --format=<format>    Output format: table (default), json
    -h, --help           Show this help

--pending and --failed cannot be combined.`

// ListOptions holds the parsed list flags.
type ListOptions struct {
	Pending bool
	Failed  bool
	Channel string
	Format  string
}

// Filter converts the flags into the dashboard filter state.
func (o ListOptions) Filter() domain.FilterState {
	filter := domain.NewFilterState()
	switch {
	case o.Pending:
		filter = filter.SelectPending()
	case o.Failed:
		filter = filter.SelectFailed()
	}
	return filter.SelectChannel(o.Channel)
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client ordersClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var opts ListOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders with filters and formats",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if opts.Format != "table" && opts.Format != "json" {
				return fmt.Errorf("invalid format: %s (must be table or json)", opts.Format)
			}
			return printList(c.Context(), client, opts, c.OutOrStdout())
		},
	}

	listCmd.Flags().BoolVar(&opts.Pending, "pending", false, "Show only pending orders")
	listCmd.Flags().BoolVar(&opts.Failed, "failed", false, "Show only failed orders")
	listCmd.Flags().StringVar(&opts.Channel, "channel", "", "Show only orders of one channel")
	listCmd.Flags().StringVar(&opts.Format, "format", "table", "Output format: table, json")
	listCmd.MarkFlagsMutuallyExclusive("pending", "failed")

	return listCmd
}

func printList(ctx context.Context, client ordersClient, opts ListOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	filter := opts.Filter()
	query := ordersync.Query{}
	if filter.Channel != domain.ChannelAll {
		query.Channel = filter.Channel
	}
	if status, ok := filter.Status.Status(); ok {
		query.Status = status
	}

	orders, err := client.FetchOrders(ctx, query)
	if err != nil {
		return fmt.Errorf("list: failed to fetch orders: %w", err)
	}
	// The service may ignore parameters it does not support.
	visible := filter.Visible(orders)

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(visible)
	}

	if len(visible) == 0 {
		_, err := fmt.Fprintln(w, render.EmptyState(filter, true))
		return err
	}
	if _, err := fmt.Fprintln(w, render.Header(0)); err != nil {
		return err
	}
	for _, order := range visible {
		if _, err := fmt.Fprintln(w, render.Row(render.RowState{Order: order})); err != nil {
			return err
		}
	}
	return nil
}

// listCmd represents the list command
var listCmd = NewListCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
