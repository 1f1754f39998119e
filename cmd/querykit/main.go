package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"text/tabwriter"

	"github.com/maxshaw/querykit"
	"github.com/maxshaw/querykit/adapter"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "querykit",
		Short:         "Run SQL through a querykit adapter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExecCmd(), newRebindCmd())
	return root
}

func newExecCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "exec SQL [ARG...]",
		Short: "Execute SQL with ? placeholders bound to ARGs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := querykit.LoadConfig(configPath)
			if err != nil {
				return err
			}

			conn, err := querykit.Connect(cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			rows, err := conn.Raw(context.Background(), args[0], toArgs(args[1:])...)
			if err != nil {
				return err
			}
			return printRows(cmd, rows)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "querykit.yaml", "config file")
	return cmd
}

func newRebindCmd() *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:   "rebind SQL",
		Short: "Print SQL with placeholders translated for a dialect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := adapter.DialectFor(dialect)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Rebind(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dialect, "dialect", "d", "postgres", "target dialect (mysql, postgres, sqlite)")
	return cmd
}

func toArgs(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func printRows(cmd *cobra.Command, rows []querykit.Row) error {
	if len(rows) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(rows[0].Columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row.Values))
		for i, v := range row.Values {
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}
