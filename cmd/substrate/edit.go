package main

import (
	"os"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/internal/cli"
	"github.com/aretw0/substrate/internal/logging"
	"github.com/aretw0/substrate/internal/presentation/tui"
	"github.com/aretw0/substrate/pkg/observability"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a substrate interactively",
	Long: `Starts the interactive editor on stdin/stdout.

Text mode accepts commands such as "input", "click 0 0" and "show".
With --json, each stdin line is an event like {"event":"click","x":0,"y":0}
and each reply is one JSON line holding the snapshot or an error.`,
	RunE: runEdit,
}

func init() {
	addEditFlags(editCmd)
	rootCmd.AddCommand(editCmd)
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Read NDJSON events and write NDJSON snapshots")
	cmd.Flags().Bool("plain", false, "Disable styled output even on a terminal")
}

func runEdit(cmd *cobra.Command, args []string) error {
	jsonMode, _ := cmd.Flags().GetBool("json")
	plain, _ := cmd.Flags().GetBool("plain")
	debug, _ := cmd.Flags().GetBool("debug")
	interactive := cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout)

	// Keep stderr quiet under the REPL unless asked.
	editLogger := logging.NewNop()
	if debug {
		editLogger = logger
	}

	d, err := substrate.New(
		substrate.WithGridSize(appConfig.GridSize),
		substrate.WithLogger(editLogger),
		substrate.WithLifecycleHooks(observability.LoggingHooks(editLogger)),
		substrate.WithName("cli"),
	)
	if err != nil {
		return err
	}

	if interactive && !jsonMode {
		tui.PrintBanner(os.Stdout)
	}

	editor := cli.NewEditor(d, os.Stdout,
		cli.WithJSON(jsonMode),
		cli.WithRichOutput(interactive && !plain && !jsonMode),
		cli.WithPrompt(interactive),
		cli.WithEditorLogger(editLogger),
	)

	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	err = editor.Run(ctx, os.Stdin)
	if sig := ctx.Signal(); sig != nil {
		editLogger.Info("Editor interrupted", "signal", sig.String())
	}
	return cli.HandleExecutionError(err)
}
