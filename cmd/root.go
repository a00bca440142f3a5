package cmd

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/order-sync-tracker/internal/colors"
	"github.com/cristianoliveira/order-sync-tracker/internal/config"
	"github.com/cristianoliveira/order-sync-tracker/internal/logging"
	"github.com/cristianoliveira/order-sync-tracker/internal/version"
)

// ErrReported marks a failure the command already printed. Execute exits
// non-zero without printing it again.
var ErrReported = stderrors.New("error already reported")

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "order-sync-tracker",
	Short: "Watch and drive order synchronization across sales channels.",
	Long: `Watch and drive order synchronization across sales channels.

Run without a command to open the dashboard.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadEnvironment,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	defer func() {
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug("failed to shut down logger:", err.Error())
		}
	}()

	err := RootCmd.Execute()
	if err != nil && !stderrors.Is(err, ErrReported) {
		colors.Error(err.Error())
	}
	return err
}

// loadEnvironment loads configuration and starts file logging before any
// command runs.
func loadEnvironment(cmd *cobra.Command, args []string) error {
	config.Load()
	if config.GetBool("debug", false) {
		colors.SetDebug(true)
	}
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.CommandPath())
	return nil
}

func init() {
	// Set version for use in help output
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		printHelpText(cmd)
	})
}

// commandOrder is the order commands appear in the root help.
var commandOrder = []string{
	"tui",
	"list",
	"chart",
	"stats",
	"sync",
	"retry",
	"watch",
	"history",
	"mock-server",
	"help",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-22s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`order-sync-tracker %s

Watch and drive order synchronization across sales channels.

USAGE:
    order-sync-tracker [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
    -v, --version   Show version

Configuration is read from $XDG_CONFIG_HOME/order-sync-tracker/config.toml
and ORDER_SYNC_* environment variables.
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
