package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/mockbackend"
)

type channelsClient interface {
	Channels() []string
}

// MockServerOptions holds the parsed mock-server flags.
type MockServerOptions struct {
	Addr        string
	Latency     time.Duration
	FailureRate float64
}

// NewMockServerCmd creates the mock-server command with explicit dependencies.
func NewMockServerCmd(client channelsClient) *cobra.Command {
	if client == nil {
		panic("NewMockServerCmd: client dependency cannot be nil")
	}

	var opts MockServerOptions
	mockCmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory Order Sync Service for local use",
		Long: `Run an in-memory Order Sync Service seeded with orders for the configured
channels. Point api_base_url at http://<addr>` + mockbackend.BasePath + ` to use it.

Latency and failure rate default to mock_latency_ms and mock_failure_rate.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if !c.Flags().Changed("latency") {
				opts.Latency = time.Duration(config.GetInt("mock_latency_ms", 0)) * time.Millisecond
			}
			if !c.Flags().Changed("failure-rate") {
				opts.FailureRate = config.GetFloat("mock_failure_rate", 0)
			}
			if opts.FailureRate < 0 || opts.FailureRate > 1 {
				return fmt.Errorf("invalid failure rate: %v (must be between 0 and 1)", opts.FailureRate)
			}

			channels := client.Channels()
			if len(channels) == 0 {
				return fmt.Errorf("no channels configured")
			}
			server := mockbackend.New(mockbackend.NewStore(channels), mockbackend.Options{
				Latency:     opts.Latency,
				FailureRate: opts.FailureRate,
			})

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			colors.Info(fmt.Sprintf("Serving %d channels on http://%s%s", len(channels), opts.Addr, mockbackend.BasePath))
			return server.Run(ctx, opts.Addr)
		},
	}
	mockCmd.Flags().StringVar(&opts.Addr, "addr", "localhost:5000", "Address to listen on")
	mockCmd.Flags().DurationVar(&opts.Latency, "latency", 0, "Delay added to every response")
	mockCmd.Flags().Float64Var(&opts.FailureRate, "failure-rate", 0, "Probability of answering 503")

	return mockCmd
}

// mockServerCmd represents the mock-server command
var mockServerCmd = NewMockServerCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(mockServerCmd)
}
