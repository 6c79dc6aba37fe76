package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/csvtable"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/logger"
)

func csvCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "csv",
		Short: "Parse and reformat CSV tables",
	}
	c.AddCommand(csvParseCmd(), csvFormatCmd())
	return c
}

func csvParseCmd() *cobra.Command {
	var delim string
	var noHeader bool
	var trim bool
	var format string

	c := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a CSV file and print it as a table or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := csvOptions(delim, !noHeader, trim)
			if err != nil {
				return err
			}

			t, err := csvtable.Load(args[0], opts...)
			if err != nil {
				logger.L().Warn("csv.parse.failed", "path", args[0], "err", err)
				return err
			}
			logger.L().Debug("csv.parsed", "path", args[0], "rows", t.Len())

			return printTable(cmd.OutOrStdout(), t, format)
		},
	}

	c.Flags().StringVarP(&delim, "delimiter", "d", "", "Column delimiter: , ; or tab (auto-detected if omitted)")
	c.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first row as data")
	c.Flags().BoolVar(&trim, "trim", false, "Trim surrounding spaces from fields")
	c.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	return c
}

func csvFormatCmd() *cobra.Command {
	var from string
	var to string
	var out string

	c := &cobra.Command{
		Use:   "format <file>",
		Short: "Rewrite a CSV file with another delimiter and canonical quoting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := csvOptions(from, true, false)
			if err != nil {
				return err
			}
			target, err := parseDelimiter(to)
			if err != nil {
				return err
			}

			t, err := csvtable.Load(args[0], opts...)
			if err != nil {
				return err
			}

			if out == "" {
				return csvtable.Write(cmd.OutOrStdout(), t, target)
			}
			if err := csvtable.Save(out, t, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d row(s) to %s\n", t.Len(), out)
			return nil
		},
	}

	c.Flags().StringVar(&from, "from", "", "Input delimiter (auto-detected if omitted)")
	c.Flags().StringVar(&to, "to", ",", "Output delimiter: , ; or tab")
	c.Flags().StringVarP(&out, "output", "o", "", "Write to file instead of stdout")
	return c
}

func csvOptions(delim string, header, trim bool) ([]csvtable.Option, error) {
	opts := []csvtable.Option{csvtable.WithHeader(header), csvtable.WithTrimSpace(trim)}
	if strings.TrimSpace(delim) != "" {
		r, err := parseDelimiter(delim)
		if err != nil {
			return nil, err
		}
		opts = append(opts, csvtable.WithDelimiter(r))
	}
	return opts, nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "tab", `\t`, "\t":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q (expected , ; or tab)", s)
	}
}

func printTable(w io.Writer, t *csvtable.Table, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if t.HasHeader() {
			return enc.Encode(t.Records())
		}
		return enc.Encode(t.Rows())
	case "table", "":
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			Rows(t.Rows()...)
		if t.HasHeader() {
			tbl = tbl.Headers(t.Header()...)
		}
		fmt.Fprintln(w, tbl.Render())
		fmt.Fprintf(w, "(%d row(s))\n", t.Len())
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected table|json)", format)
	}
}
