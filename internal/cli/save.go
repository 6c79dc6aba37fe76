package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/usecase/query"
)

func saveCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "save",
		Short: "Manage save slots in a workspace",
	}
	c.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	c.AddCommand(
		saveWriteCmd(&workspace),
		saveReadCmd(&workspace),
		saveListCmd(&workspace),
		saveDeleteCmd(&workspace),
		saveGetCmd(&workspace),
	)
	return c
}

func saveWriteCmd(workspace *string) *cobra.Command {
	var name string
	var data string
	var dataFile string

	c := &cobra.Command{
		Use:   "write <slot>",
		Short: "Write a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}

			if dataFile != "" {
				var b []byte
				if dataFile == "-" {
					b, err = io.ReadAll(cmd.InOrStdin())
				} else {
					b, err = os.ReadFile(dataFile)
				}
				if err != nil {
					return fmt.Errorf("read data: %w", err)
				}
				data = string(b)
			}
			if name == "" {
				name = args[0]
			}

			path, err := ws.saves.Save(args[0], domain.SaveData{Name: name, Data: data})
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(ws.root, path)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", rel)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "Display name (defaults to the slot)")
	c.Flags().StringVar(&data, "data", "", "Payload string")
	c.Flags().StringVar(&dataFile, "data-file", "", "Read payload from file (- for stdin)")
	c.MarkFlagsMutuallyExclusive("data", "data-file")
	return c
}

func saveReadCmd(workspace *string) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "read <slot>",
		Short: "Print a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}
			f, err := ws.saves.LoadFile(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(f)
			case "pretty", "":
				fmt.Fprintf(w, "Name:    %s\n", f.Data.Name)
				fmt.Fprintf(w, "Saved:   %s\n", f.SavedAt.Format(time.RFC3339))
				fmt.Fprintf(w, "Version: %d\n", f.Version)
				fmt.Fprintf(w, "Data:    %s\n", f.Data.Data)
				return nil
			default:
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func saveListCmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List save slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}
			refs, err := ws.saves.List()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(w, "(no save slots found)")
				return nil
			}
			for _, r := range refs {
				saved := "?"
				if !r.SavedAt.IsZero() {
					saved = r.SavedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "- %s  (%s, %s)\n", r.Slot, r.Format, saved)
			}
			return nil
		},
	}
}

func saveDeleteCmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}
			if !ws.saves.Delete(args[0]) {
				return &domain.OpError{
					Op:   "save.delete",
					Kind: domain.KindNotFound,
					Err:  fmt.Errorf("slot %q: %w", args[0], domain.ErrNotFound),
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func saveGetCmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slot> <jsonpath>",
		Short: "Query a save slot with JSONPath (e.g. $.data.data.level)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}
			v, err := query.NewSlotQuery(ws.saves).Execute(args[0], args[1])
			if err != nil {
				if errors.Is(err, query.ErrNoValue) {
					return fmt.Errorf("%s: no value at %s", args[0], args[1])
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
