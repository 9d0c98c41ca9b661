// Command actorctl resolves, builds and formats actor identities from the
// command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configDir    string
	source       string
	sheetPath    string
	sqlitePath   string
	snapshotPath string
	logLevel     string
	viewerWorld  uint16
	logToFile    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var a *app

	rootCmd := &cobra.Command{
		Use:           "actorctl",
		Short:         "Resolve and format actor identities",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cmd.Context(), opts, cmd.Flags().Changed)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.close(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", ".", "Directory containing actorid.cfg.json")
	flags.StringVar(&opts.source, "source", "", "Game data source: sheet or sqlite")
	flags.StringVar(&opts.sheetPath, "sheet", "", "Sheet file (YAML or JSON)")
	flags.StringVar(&opts.sqlitePath, "sqlite", "", "Sheet database file")
	flags.StringVar(&opts.snapshotPath, "snapshot", "", "Object table snapshot file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.Uint16Var(&opts.viewerWorld, "viewer", 0, "Home world of the local player, 0 for none")
	flags.BoolVar(&opts.logToFile, "log-file", false, "Write logs to a file in logsDir instead of stderr")

	current := func() *app { return a }
	rootCmd.AddCommand(
		newResolveCmd(current),
		newFormatCmd(current),
		newCreateCmd(current),
		newValidateCmd(current),
		newImportSheetCmd(current),
		newExportSheetCmd(current),
		newCallCmd(current),
	)

	return rootCmd
}
