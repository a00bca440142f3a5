package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/order-sync-tracker/cmd"
	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
	"github.com/cristianoliveira/order-sync-tracker/internal/errors"
	"github.com/cristianoliveira/order-sync-tracker/internal/ordersync"
	"github.com/cristianoliveira/order-sync-tracker/internal/storage"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/render"
	"github.com/cristianoliveira/order-sync-tracker/internal/tui/service"
)

// commandClient runs sync and retry commands and journals them.
type commandClient interface {
	ordersync.Service
	OpenHistory() (storage.HistoryStore, error)
}

// runCommand runs one sync or retry to completion, prints the outcome and
// then the single refresh the command owes.
func runCommand(ctx context.Context, client commandClient, kind domain.CommandKind, target string, w io.Writer) error {
	history, err := client.OpenHistory()
	if err != nil {
		return fmt.Errorf("open command history: %w", err)
	}
	defer func() {
		if err := history.Close(); err != nil {
			colors.Warning(fmt.Sprintf("Failed to close command history: %v", err))
		}
	}()

	commands := service.NewCommandService(client, errors.NewDefaultCLIHandler(), service.WithHistory(history))
	var state service.CommandState
	query := ordersync.Query{}
	if kind == domain.CommandRetry {
		state = commands.RunRetry(ctx, target)
	} else {
		state = commands.RunSync(ctx, target)
		query.Channel = target
	}

	orders, fetchErr := client.FetchOrders(ctx, query)
	if fetchErr != nil {
		colors.Warning(fmt.Sprintf("Failed to fetch orders: %v", fetchErr))
	} else {
		fmt.Fprintln(w, render.Title(domain.Summarize(orders)))
	}

	if state.Phase == domain.PhaseFailed {
		return cmd.ErrReported
	}
	return nil
}
