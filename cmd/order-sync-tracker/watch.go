package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/service"
)

// WatchOptions configures the watch loop.
type WatchOptions struct {
	Interval time.Duration
	// Count stops after that many fetches; zero runs until cancelled.
	Count int
}

// NewWatchCmd creates the watch command with explicit dependencies.
func NewWatchCmd(client ordersClient) *cobra.Command {
	if client == nil {
		panic("NewWatchCmd: client dependency cannot be nil")
	}

	var opts WatchOptions
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print order counts on every poll",
		Long: `Fetch orders now and on every poll interval, printing one summary line
per fetch. Failed fetches print a warning and the loop keeps going.

The interval defaults to poll_interval_seconds from the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if !c.Flags().Changed("interval") {
				opts.Interval = config.GetSeconds("poll_interval_seconds", service.DefaultPollInterval)
			}
			if opts.Interval <= 0 {
				return fmt.Errorf("invalid interval: %s (must be positive)", opts.Interval)
			}
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchOrders(ctx, client, opts, c.OutOrStdout())
		},
	}
	watchCmd.Flags().DurationVar(&opts.Interval, "interval", service.DefaultPollInterval, "Time between fetches")
	watchCmd.Flags().IntVar(&opts.Count, "count", 0, "Stop after N fetches (0 runs until interrupted)")

	return watchCmd
}

// watchOrders polls until ctx is done or Count fetches have run.
func watchOrders(ctx context.Context, client ordersClient, opts WatchOptions, w io.Writer) error {
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		watchOnce(ctx, client, w)
		if opts.Count > 0 && n >= opts.Count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func watchOnce(ctx context.Context, client ordersClient, w io.Writer) {
	orders, err := client.FetchOrders(ctx, ordersync.Query{})
	if err != nil {
		if ctx.Err() == nil {
			colors.Warning(fmt.Sprintf("Failed to fetch orders: %v", err))
		}
		return
	}
	s := domain.Summarize(orders)
	fmt.Fprintf(w, "%s  total=%d success=%d failed=%d pending=%d\n",
		time.Now().Format("15:04:05"), s.Total, s.Success, s.Failed, s.Pending)
}

// watchCmd represents the watch command
var watchCmd = NewWatchCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(watchCmd)
}
