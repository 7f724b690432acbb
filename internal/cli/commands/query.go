package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/leaprel/pkg/rel"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [EXPR]",
		Short: "Evaluate relational algebra queries",
		Long: `Evaluate relational algebra queries against the loaded fixtures.

The input may contain relation definitions and expressions. Definitions bind
into the session, and the value of every expression is printed in the
configured output format.

When invoked without arguments and stdin is a terminal, enters interactive
REPL mode.`,
		Example: `  # Evaluate an expression
  leaprel query --sample 'select Age > 30 Employees'

  # Mix definitions and expressions
  leaprel query 'R { a 1 2 } project a R'

  # Read from a file, output as JSON
  leaprel query -i queries.ra -o json

  # Interactive mode
  leaprel query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read queries from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	src, interactive, err := readSource(cmd, args, opts.Input)
	if err != nil {
		return err
	}
	if interactive {
		return runQueryREPL(cmd, cmdCtx)
	}

	return executeAndRender(cmd.OutOrStdout(), cmdCtx.Session, src, cmdCtx.Cfg.OutputFormat)
}

// readSource picks the query text from args, the input file, or piped
// stdin. interactive is true when none is given and stdin is a terminal.
func readSource(cmd *cobra.Command, args []string, input string) (src string, interactive bool, err error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), false, nil
	case input != "":
		content, err := os.ReadFile(input)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), false, nil
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), false, nil
	default:
		return "", true, nil
	}
}

// executeAndRender runs src and renders the value of every expression.
// Values computed before a failure are still rendered.
func executeAndRender(w io.Writer, s *Session, src, format string) error {
	results, err := s.Exec(src)
	for _, res := range results {
		if res.Defined() {
			continue
		}
		if rerr := renderValue(w, res.Value, format); rerr != nil {
			return rerr
		}
	}
	return err
}

func describeRelation(name string, r *rel.Relation) string {
	return fmt.Sprintf("%s(%s) %s", name, strings.Join(r.Columns(), ", "), rowCount(r.Len()))
}
