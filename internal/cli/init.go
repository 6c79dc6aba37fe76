package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fsworkspace"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/logger"
	"github.com/kylepfurey/FureyLib-sub005/internal/usecase"
)

func initCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a workspace (fureylib.yaml, sample dialogue and CSV)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("invalid workspace path: %w", err)
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return err
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				logger.L().Error("workspace.init.failed", "root", root, "err", err)
				return err
			}
			if logger.IsReady() != nil {
				if cleanup, err := logger.Setup(logger.Config{Root: root}); err == nil {
					defer func() { _ = cleanup() }()
				}
			}
			logger.L().Info("workspace.init", "root", root, "force", force)

			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready: %s\n", root)
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
