package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/dialogue"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fsworkspace"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/logger"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/workspacefinder"
	"github.com/kylepfurey/FureyLib-sub005/internal/ui/tui"
	"github.com/kylepfurey/FureyLib-sub005/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "fureylib",
		Short:        "FureyLib: gameplay snippets (containers, CSV, saves, dialogue, meshes, netcode)",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Subcommands only log inside a workspace; the TUI logs next to
			// the working dir when there is none.
			root, found := findWorkspace()
			if !found && cmd.HasParent() {
				return nil
			}
			opts := logger.Config{Root: root, Debug: debug}
			if debug && cmd.Name() == "serve" {
				opts.Echo = cmd.ErrOrStderr()
			}
			var err error
			if cleanup, err = logger.Setup(opts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: file logging disabled: %v\n", err)
				return nil
			}
			logger.L().Debug("cli.command", "cmd", cmd.CommandPath())
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			deps := tui.Deps{
				WorkspaceLocator: workspacefinder.NewFinder(),
				InitWorkspace:    usecase.NewInitWorkspace(fsworkspace.NewInitializer()),
				Scripts:          dialogue.NewLoader(),
				Vars:             map[string]string{"player": defaultPlayerName()},
				Logger:           logger.Component("tui"),
				Debug:            debug,
			}
			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .fureylib/logs/fureylib.log")

	cmd.AddCommand(
		initCmd(),
		csvCmd(),
		saveCmd(),
		queueCmd(),
		dialogueCmd(),
		meshCmd(),
		lightCmd(),
		netCmd(),
		timeCmd(),
		versionCmd(),
	)
	return cmd
}

// findWorkspace returns the workspace root above the working dir, or the
// working dir itself with found=false.
func findWorkspace() (root string, found bool) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
		return root, true
	}
	return wd, false
}

func defaultPlayerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "traveler"
}
