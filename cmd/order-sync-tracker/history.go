package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
)

type historyClient interface {
	OpenHistory() (storage.HistoryStore, error)
}

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(client historyClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync and retry commands",
		Long: `Show recent sync and retry commands, newest first.

The limit defaults to history_limit from the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if !c.Flags().Changed("limit") {
				limit = config.GetInt("history_limit", limit)
			}
			history, err := client.OpenHistory()
			if err != nil {
				return fmt.Errorf("open command history: %w", err)
			}
			defer func() {
				if err := history.Close(); err != nil {
					colors.Warning(fmt.Sprintf("Failed to close command history: %v", err))
				}
			}()

			records, err := history.List(c.Context(), limit)
			if err != nil {
				return fmt.Errorf("history: failed to list commands: %w", err)
			}
			return printHistory(records, c.OutOrStdout())
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of commands to show")

	return historyCmd
}

func printHistory(records []domain.CommandRecord, w io.Writer) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No commands recorded")
		return err
	}
	if _, err := fmt.Fprintf(w, "%-20s  %-5s  %-16s  %-9s  %8s  %s\n", "FINISHED", "KIND", "TARGET", "RESULT", "DURATION", "DETAIL"); err != nil {
		return err
	}
	for _, rec := range records {
		detail := rec.Error
		if detail == "" && rec.Kind == domain.CommandSync {
			detail = fmt.Sprintf("%d synced", rec.SyncedCount)
		}
		if _, err := fmt.Fprintf(w, "%-20s  %-5s  %-16s  %-9s  %8s  %s\n",
			rec.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Kind.String(),
			rec.Target,
			rec.Phase.String(),
			rec.Duration().Round(time.Millisecond),
			detail,
		); err != nil {
			return err
		}
	}
	return nil
}

// historyCmd represents the history command
var historyCmd = NewHistoryCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(historyCmd)
}
