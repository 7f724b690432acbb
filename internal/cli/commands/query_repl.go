package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leaprel/internal/fixtures"
	"github.com/leapstack-labs/leaprel/pkg/parser"
	"github.com/leapstack-labs/leaprel/pkg/rel"
	"github.com/leapstack-labs/leaprel/pkg/token"
	"github.com/spf13/cobra"
)

const continuationPrompt = "    ...> "

var dotCommands = []string{
	".help", ".relations", ".schema", ".tokens", ".ast", ".load", ".clear", ".quit", ".exit",
}

func runQueryREPL(cmd *cobra.Command, cmdCtx *CommandContext) error {
	ctx := cmd.Context()
	cfg := cmdCtx.Cfg

	r := newREPL(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmdCtx)

	if cfg.Watch {
		w, err := fixtures.NewWatcher(ctx, cmdCtx.Logger, cmdCtx.Session.WatchPaths()...)
		if err != nil {
			return fmt.Errorf("failed to watch fixtures: %w", err)
		}
		defer func() { _ = w.Close() }()
		r.watcher = w
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    &completer{session: cmdCtx.Session},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(r.out, "%s (%d relations loaded)\n", r.styles.Header.Render("leaprel REPL"), cmdCtx.Session.Globals.Len())
	_, _ = fmt.Fprintln(r.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(r.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			r.reset()
			rl.SetPrompt(r.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if quit := r.handleLine(ctx, line); quit {
			break
		}
		rl.SetPrompt(r.prompt())
	}

	return nil
}

// repl holds the state of an interactive session between lines.
type repl struct {
	out, errOut io.Writer
	session     *Session
	format      string
	basePrompt  string
	styles      *styles
	errStyles   *styles
	watcher     *fixtures.Watcher
	buf         strings.Builder
}

func newREPL(out, errOut io.Writer, cmdCtx *CommandContext) *repl {
	return &repl{
		out:        out,
		errOut:     errOut,
		session:    cmdCtx.Session,
		format:     cmdCtx.Cfg.OutputFormat,
		basePrompt: cmdCtx.Cfg.Prompt,
		styles:     newStyles(out),
		errStyles:  newStyles(errOut),
	}
}

func (r *repl) prompt() string {
	if r.buf.Len() > 0 {
		return continuationPrompt
	}
	return r.basePrompt
}

func (r *repl) reset() { r.buf.Reset() }

// handleLine processes one line of input and reports whether the REPL
// should exit. Input accumulates until it forms complete statements.
func (r *repl) handleLine(ctx context.Context, line string) bool {
	if r.buf.Len() == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return r.handleDotCommand(ctx, trimmed)
		}
	}

	r.buf.WriteString(line)
	r.buf.WriteString("\n")
	src := r.buf.String()

	if _, err := parser.ParseScript(src); errors.Is(err, parser.ErrIncomplete) {
		return false
	}
	r.reset()

	r.reloadIfChanged(ctx)
	r.execute(src)
	return false
}

func (r *repl) execute(src string) {
	results, err := r.session.Exec(src)
	for _, res := range results {
		if res.Defined() {
			defined := res.Value.(*rel.Relation)
			_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(fmt.Sprintf("Defined %s (%s)", res.Name, rowCount(defined.Len()))))
			continue
		}
		if rerr := renderValue(r.out, res.Value, r.format); rerr != nil {
			r.printError(rerr)
		}
	}
	if err != nil {
		r.printError(err)
	}
}

func (r *repl) reloadIfChanged(ctx context.Context) {
	if r.watcher == nil || !r.watcher.Dirty() {
		return
	}
	if err := r.session.LoadFixtures(ctx); err != nil {
		r.printError(err)
		return
	}
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render("Reloaded fixtures"))
}

func (r *repl) printError(err error) {
	_, _ = fmt.Fprintln(r.errOut, r.errStyles.Error.Render("Error: "+err.Error()))
}

func (r *repl) handleDotCommand(ctx context.Context, line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	command = strings.ToLower(command)
	arg = strings.TrimSpace(arg)

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.out)

	case ".relations":
		listRelations(r.out, r.session)

	case ".schema":
		if arg == "" {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .schema <relation>")
			return false
		}
		rl, ok := r.session.Globals.Lookup(arg)
		if !ok {
			r.printError(fmt.Errorf("relation %q is not defined", arg))
			return false
		}
		_, _ = fmt.Fprintln(r.out, describeRelation(arg, rl))
		if src := r.session.Source(arg); src != "" {
			_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render("source: "+src))
		}

	case ".tokens":
		toks, err := parser.Tokenize(arg)
		if err != nil {
			r.printError(err)
			return false
		}
		writeTokens(r.out, toks)

	case ".ast":
		stmts, err := parser.ParseScript(arg)
		if err != nil {
			r.printError(err)
			return false
		}
		writeAST(r.out, stmts)

	case ".load":
		if arg == "" {
			_, _ = fmt.Fprintln(r.errOut, "Usage: .load <file>")
			return false
		}
		loaded, err := r.session.LoadFile(ctx, arg)
		if err != nil {
			r.printError(err)
			return false
		}
		for _, f := range loaded {
			_, _ = fmt.Fprintf(r.out, "Loaded %s\n", describeRelation(f.Name, f.Relation))
		}

	case ".clear":
		_, _ = fmt.Fprint(r.out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(r.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .relations       List bound relations
  .schema <name>   Show the columns of a relation
  .tokens <expr>   Show the tokens of an expression
  .ast <expr>      Show the syntax tree of an expression
  .load <file>     Load relations from a fixture file
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - A statement spanning lines continues until it is complete
  - Ctrl-C discards a pending statement
  - Tab completes keywords and relation names
`
	_, _ = fmt.Fprintln(w, help)
}

// completer completes the word under the cursor against keywords, bound
// relation names and, at the start of a line, dot-commands.
type completer struct {
	session *Session
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])

	var candidates []string
	if start == 0 && strings.HasPrefix(prefix, ".") {
		candidates = dotCommands
	} else if prefix != "" {
		candidates = append(token.Keywords(), c.session.Globals.Names()...)
	}

	var out [][]rune
	for _, cand := range candidates {
		if len(cand) > len(prefix) && strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}

func isWordRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
