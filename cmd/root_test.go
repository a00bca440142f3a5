package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestPrintHelpTextListsCommandsInOrder(t *testing.T) {
	root := &cobra.Command{Use: "order-sync-tracker"}
	root.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version information"},
		&cobra.Command{Use: "sync <channel>", Short: "Sync one channel"},
		&cobra.Command{Use: "list", Short: "List orders"},
		&cobra.Command{Use: "unlisted", Short: "Not in the help"},
	)
	var buf bytes.Buffer
	root.SetOut(&buf)

	printHelpText(root)

	out := buf.String()
	assert.Contains(t, out, "USAGE:")
	assert.Regexp(t, `\n    list\s+List orders\n`, out)
	assert.NotContains(t, out, "unlisted")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("list")), bytes.Index(buf.Bytes(), []byte("sync <channel>")))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("sync <channel>")), bytes.Index(buf.Bytes(), []byte("version  ")))
}

func TestRootCommandDefaults(t *testing.T) {
	assert.True(t, RootCmd.SilenceErrors)
	assert.True(t, RootCmd.SilenceUsage)
	assert.NotEmpty(t, RootCmd.Version)
	assert.NotNil(t, RootCmd.PersistentPreRunE)
}
