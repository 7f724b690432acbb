package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/leaprel/pkg/parser"
	"github.com/leapstack-labs/leaprel/pkg/token"
	"github.com/spf13/cobra"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Input  string
	Tokens bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [EXPR]",
		Short: "Show the syntax tree of a query",
		Long: `Parse queries without evaluating them and print the syntax tree of
every statement. With --tokens the token stream is printed first.`,
		Example: `  leaprel parse 'select Age > 30 Employees'
  leaprel parse --tokens 'A join B'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, interactive, err := readSource(cmd, args, opts.Input)
			if err != nil {
				return err
			}
			if interactive {
				return errors.New("no input: pass an expression, --input, or pipe to stdin")
			}
			return runParse(cmd.OutOrStdout(), src, opts.Tokens)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read queries from file")
	cmd.Flags().BoolVar(&opts.Tokens, "tokens", false, "Print the token stream")

	return cmd
}

func runParse(w io.Writer, src string, tokens bool) error {
	if tokens {
		toks, err := parser.Tokenize(src)
		if err != nil {
			return err
		}
		writeTokens(w, toks)
	}

	stmts, err := parser.ParseScript(src)
	if err != nil {
		return err
	}
	writeAST(w, stmts)
	return nil
}

func writeTokens(w io.Writer, toks []parser.Token) {
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		_, _ = fmt.Fprintf(w, "%-8s %s\n", tok.Pos, tok)
	}
}

func writeAST(w io.Writer, stmts []parser.Statement) {
	for _, stmt := range stmts {
		_, _ = fmt.Fprintln(w, stmt.String())
	}
}
