package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewFixturesCommand creates the fixtures command.
func NewFixturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List loaded fixture relations",
		Long: `List every relation bound from the built-in sample, the fixtures
directory and the --fixture files, with its columns, row count and source.`,
		Example: `  leaprel fixtures
  leaprel fixtures --sample --fixtures-dir testdata`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			listRelations(cmd.OutOrStdout(), cmdCtx.Session)
			return nil
		},
	}
}

func listRelations(w io.Writer, s *Session) {
	names := s.Globals.Names()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "(no relations)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Columns", "Rows", "Source"})

	for _, name := range names {
		r, _ := s.Globals.Lookup(name)
		t.AppendRow(table.Row{name, strings.Join(r.Columns(), ", "), r.Len(), s.Source(name)})
	}
	t.Render()
}
