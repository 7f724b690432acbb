package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/leaprel/internal/cli/config"
	"github.com/leapstack-labs/leaprel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	return newREPL(out, errOut, newTestContext(t, config.OutputCSV)), out, errOut
}

func TestREPL_MultiLineStatement(t *testing.T) {
	r, out, _ := newTestREPL(t)
	ctx := context.Background()

	assert.False(t, r.handleLine(ctx, "R { a, b"))
	assert.Equal(t, continuationPrompt, r.prompt())
	assert.Empty(t, out.String())

	assert.False(t, r.handleLine(ctx, `1, "x"`))
	assert.False(t, r.handleLine(ctx, "2, \"y\" }"))
	assert.Equal(t, config.DefaultPrompt, r.prompt())
	assert.Contains(t, out.String(), "Defined R (2 rows)")

	out.Reset()
	assert.False(t, r.handleLine(ctx, "project b R"))
	assert.Equal(t, "b\nx\ny\n", out.String())
}

func TestREPL_ContinuesAfterOperator(t *testing.T) {
	r, out, _ := newTestREPL(t)
	ctx := context.Background()

	r.handleLine(ctx, "Employees union")
	assert.Equal(t, continuationPrompt, r.prompt())

	r.handleLine(ctx, "Employees")
	assert.Contains(t, out.String(), "Alice,32,Finance")
}

func TestREPL_ErrorsKeepState(t *testing.T) {
	r, out, errOut := newTestREPL(t)
	ctx := context.Background()

	r.handleLine(ctx, `S { k 1 } Missing`)
	assert.Contains(t, out.String(), "Defined S (1 row)")
	assert.Contains(t, errOut.String(), "Error: evaluation error")
	assert.Contains(t, errOut.String(), `"Missing"`)

	errOut.Reset()
	r.handleLine(ctx, "select ) S")
	assert.Contains(t, errOut.String(), "parse error")
	assert.Equal(t, config.DefaultPrompt, r.prompt(), "a syntax error should not wait for more input")

	out.Reset()
	r.handleLine(ctx, "S")
	assert.Equal(t, "k\n1\n", out.String())
}

func TestREPL_ResetDiscardsPendingInput(t *testing.T) {
	r, out, _ := newTestREPL(t)
	ctx := context.Background()

	r.handleLine(ctx, "R { a")
	r.reset()
	assert.Equal(t, config.DefaultPrompt, r.prompt())

	r.handleLine(ctx, "1 == 1")
	assert.Equal(t, "true\n", out.String())
}

func TestREPL_DotCommands(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantOut []string
		wantErr []string
		quit    bool
	}{
		{name: "help", line: ".help", wantOut: []string{".relations", ".load <file>"}},
		{name: "relations", line: ".relations", wantOut: []string{"Employees", "Departments"}},
		{name: "schema", line: ".schema Employees", wantOut: []string{"Employees(Name, Age, Department) 2 rows", "source: sample"}},
		{name: "schema usage", line: ".schema", wantErr: []string{"Usage: .schema"}},
		{name: "schema unknown", line: ".schema Nope", wantErr: []string{`relation "Nope" is not defined`}},
		{name: "tokens", line: ".tokens a <= 3", wantOut: []string{"IDENT(a)", "<=", "INT(3)"}},
		{name: "tokens error", line: `.tokens a $`, wantErr: []string{"Error:"}},
		{name: "ast", line: ".ast project a R", wantOut: []string{"UnaryExpression{project a R}"}},
		{name: "ast error", line: ".ast select", wantErr: []string{"Error:"}},
		{name: "load usage", line: ".load", wantErr: []string{"Usage: .load"}},
		{name: "unknown", line: ".frobnicate", wantErr: []string{"Unknown command: .frobnicate"}},
		{name: "case insensitive", line: ".HELP", wantOut: []string{"Commands:"}},
		{name: "quit", line: ".quit", quit: true},
		{name: "exit", line: "  .exit  ", quit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, errOut := newTestREPL(t)

			quit := r.handleLine(context.Background(), tt.line)
			assert.Equal(t, tt.quit, quit)
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			for _, want := range tt.wantErr {
				assert.Contains(t, errOut.String(), want)
			}
		})
	}
}

func TestREPL_Load(t *testing.T) {
	r, out, errOut := newTestREPL(t)
	ctx := context.Background()

	path := testutil.WriteFile(t, t.TempDir(), "Cities.csv", "City,Pop\nOslo,700\n")
	r.handleLine(ctx, ".load "+path)
	require.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "Loaded Cities(City, Pop) 1 row")

	out.Reset()
	r.handleLine(ctx, "select Pop > 500 Cities")
	assert.Equal(t, "City,Pop\nOslo,700\n", out.String())
	assert.Equal(t, path, r.session.Source("Cities"))

	r.handleLine(ctx, ".load "+path+".missing")
	assert.Contains(t, errOut.String(), "Error:")
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	r, out, errOut := newTestREPL(t)
	assert.False(t, r.handleLine(context.Background(), "   "))
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
	assert.Equal(t, config.DefaultPrompt, r.prompt())
}

func TestCompleter(t *testing.T) {
	cmdCtx := newTestContext(t, config.OutputTable)
	c := &completer{session: cmdCtx.Session}

	tests := []struct {
		name   string
		line   string
		want   []string
		length int
	}{
		{name: "keyword", line: "sel", want: []string{"ect "}, length: 3},
		{name: "relation after operator", line: "Employees join Dep", want: []string{"artments "}, length: 3},
		{name: "several matches", line: "Employees right", want: []string{"_join "}, length: 5},
		{name: "dot command", line: ".re", want: []string{"lations "}, length: 3},
		{name: "dot command only at start", line: "A .re", want: nil, length: 3},
		{name: "empty word", line: "select ", want: nil, length: 0},
		{name: "complete word", line: "join", want: nil, length: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := []rune(tt.line)
			got, length := c.Do(line, len(line))

			var words []string
			for _, g := range got {
				words = append(words, string(g))
			}
			assert.Equal(t, tt.want, words)
			assert.Equal(t, tt.length, length)
		})
	}
}
