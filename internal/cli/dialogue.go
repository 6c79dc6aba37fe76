package cli

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/dialogue"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fileio"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/logger"
	"github.com/kylepfurey/FureyLib-sub005/internal/ui/tui"
	"github.com/kylepfurey/FureyLib-sub005/internal/usecase"
)

func dialogueCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "dialogue",
		Short: "Play and validate dialogue scripts",
	}
	c.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	c.AddCommand(dialoguePlayCmd(&workspace), dialogueValidateCmd(&workspace))
	return c
}

func dialoguePlayCmd(workspace *string) *cobra.Command {
	var plain bool
	var vars map[string]string

	c := &cobra.Command{
		Use:   "play <script>",
		Short: "Play a dialogue script (TUI, or line mode with --plain)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScriptArg(*workspace, args[0])
			if err != nil {
				return err
			}
			vars = withDefaultVars(vars)

			if plain {
				r, err := dialogue.NewRunner(s, logger.Component("dialogue"))
				if err != nil {
					return err
				}
				for k, v := range vars {
					r.SetVar(k, v)
				}
				return playPlain(r, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			return tui.Play(tui.Deps{
				Scripts: dialogue.NewLoader(),
				Vars:    vars,
				Logger:  logger.Component("tui"),
			}, s)
		},
	}

	c.Flags().BoolVar(&plain, "plain", false, "Line mode: print lines and read choice numbers from stdin")
	c.Flags().StringToStringVar(&vars, "var", nil, "Placeholder values, e.g. --var player=Ada")
	return c
}

func dialogueValidateCmd(workspace *string) *cobra.Command {
	var vars map[string]string

	c := &cobra.Command{
		Use:   "validate [script ...]",
		Short: "Check scripts for dangling references, unknown placeholders and unreachable nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(*workspace)
			if err != nil {
				return err
			}

			var paths []string
			if len(args) == 0 {
				paths, err = fileio.List(filepath.Join(ws.root, ws.cfg.Dialogue.Dir), ".yaml", ".yml")
				if err != nil {
					return err
				}
			}
			for _, a := range args {
				p, err := resolveScriptPath(ws, a)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			}

			uc := usecase.NewValidateDialogue(ws.scripts)
			reports, err := uc.Execute(cmd.Context(), paths, withDefaultVars(vars))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			bad := 0
			for _, r := range reports {
				rel, rerr := filepath.Rel(ws.root, r.Path)
				if rerr != nil {
					rel = r.Path
				}
				if r.OK() {
					fmt.Fprintf(w, "- [OK] %s (%s, %d nodes)\n", rel, r.ScriptID, r.Nodes)
				} else {
					bad++
					fmt.Fprintf(w, "- [FAIL] %s\n", rel)
					for _, p := range r.Problems {
						fmt.Fprintf(w, "    %s\n", p)
					}
				}
				if len(r.Unreachable) > 0 {
					fmt.Fprintf(w, "    unreachable: %s\n", strings.Join(r.Unreachable, ", "))
				}
			}

			if bad > 0 {
				return fmt.Errorf("validation failed (%d invalid script(s))", bad)
			}
			return nil
		},
	}

	c.Flags().StringToStringVar(&vars, "var", nil, "Known placeholder values, e.g. --var player=Ada")
	return c
}

func loadScriptArg(workspace, arg string) (*dialogue.Script, error) {
	// A direct file path works outside a workspace.
	if hasYAMLExt(arg) && fileExists(arg) && strings.TrimSpace(workspace) == "" {
		return dialogue.LoadScript(arg)
	}
	ws, err := loadWorkspace(workspace)
	if err != nil {
		return nil, err
	}
	p, err := resolveScriptPath(ws, arg)
	if err != nil {
		return nil, err
	}
	return ws.scripts.LoadScript(p)
}

func withDefaultVars(vars map[string]string) map[string]string {
	out := map[string]string{"player": defaultPlayerName()}
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// playPlain runs r in line mode. Choices are read as 1-based numbers; EOF
// ends the conversation early.
func playPlain(r *dialogue.Runner, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	for !r.Finished() {
		if text := r.Text(); text != "" {
			if sp := r.Speaker(); sp != "" {
				fmt.Fprintf(out, "%s: %s\n", sp, text)
			} else {
				fmt.Fprintln(out, text)
			}
		}

		if !r.AwaitingChoice() {
			r.Advance()
			continue
		}

		for {
			for i, c := range r.AvailableChoices() {
				fmt.Fprintf(out, "  %d) %s\n", i+1, c.Text)
			}
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				fmt.Fprintln(out)
				return sc.Err()
			}
			n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
			if err == nil {
				err = r.Choose(n - 1)
			}
			if err == nil {
				break
			}
			fmt.Fprintln(out, "invalid choice, try again")
		}
	}

	fmt.Fprintln(out, "(end)")
	return nil
}
