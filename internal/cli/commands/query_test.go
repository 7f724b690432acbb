package commands

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leaprel/internal/cli/config"
	"github.com/leapstack-labs/leaprel/internal/testutil"
	"github.com/leapstack-labs/leaprel/pkg/eval"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAndRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "selection",
			input: "select Age > 30 Employees",
			want:  "Name,Age,Department\nAlice,32,Finance\n",
		},
		{
			name:  "definitions are silent",
			input: `R { a 1 2 } project a R`,
			want:  "a\n1\n2\n",
		},
		{
			name:  "every expression is rendered",
			input: `1 < 2 project Floor Departments`,
			want:  "true\nFloor\n3\n2\n",
		},
		{
			name:  "empty input",
			input: "  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdCtx := newTestContext(t, config.OutputCSV)
			buf := new(bytes.Buffer)

			err := executeAndRender(buf, cmdCtx.Session, tt.input, cmdCtx.Cfg.OutputFormat)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestExecuteAndRender_PartialFailure(t *testing.T) {
	cmdCtx := newTestContext(t, config.OutputCSV)
	buf := new(bytes.Buffer)

	err := executeAndRender(buf, cmdCtx.Session, `R { a 1 } 1 == 1 Missing`, config.OutputCSV)
	require.Error(t, err)
	assert.True(t, errors.Is(err, eval.ErrUnknownIdentifier))

	assert.Equal(t, "true\n", buf.String())
	_, ok := cmdCtx.Session.Globals.Lookup("R")
	assert.True(t, ok, "definition before the failure should stay bound")
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "q.ra", "project Name Employees")

	tests := []struct {
		name  string
		args  []string
		input string
		stdin string
		want  string
	}{
		{name: "args are joined", args: []string{"select", "Age > 30", "Employees"}, want: "select Age > 30 Employees"},
		{name: "input file", input: file, want: "project Name Employees"},
		{name: "piped stdin", stdin: "Employees\n", want: "Employees\n"},
		{name: "args win over stdin", args: []string{"A"}, stdin: "B", want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader(tt.stdin))

			src, interactive, err := readSource(cmd, tt.args, tt.input)
			require.NoError(t, err)
			assert.False(t, interactive)
			assert.Equal(t, tt.want, src)
		})
	}
}

func TestReadSource_MissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	_, _, err := readSource(cmd, nil, filepath.Join(t.TempDir(), "missing.ra"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestQueryCommand_Execute(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewQueryCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{`R { a, b 1, "x" 2, "y" } select a > 1 R`})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "y")
	assert.Contains(t, out.String(), "(1 row)")
	assert.NotContains(t, out.String(), "x")
}

func TestQueryCommand_Error(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewQueryCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{`5 < "5"`})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, eval.ErrTypeMismatch))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "syntax tree",
			args: []string{"A join B"},
			want: []string{"BinaryExpression{A join B}"},
		},
		{
			name: "tokens",
			args: []string{"--tokens", `select a == "x" R`},
			want: []string{"1:1", "select", "IDENT(a)", `STRING("x")`, "UnaryExpression{select"},
		},
		{
			name: "relation definition",
			args: []string{`R { a 1 }`},
			want: []string{"RelationDef{R (a) [(1)]}"},
		},
		{
			name:    "incomplete input",
			args:    []string{"select a =="},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewParseCommand()
			out := new(bytes.Buffer)
			cmd.SetOut(out)
			cmd.SetErr(new(bytes.Buffer))
			cmd.SilenceUsage = true
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestFixturesCommand(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewFixturesCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "(no relations)")
}

func TestListRelations(t *testing.T) {
	cmdCtx := newTestContext(t, config.OutputTable)
	buf := new(bytes.Buffer)

	listRelations(buf, cmdCtx.Session)

	out := buf.String()
	assert.Contains(t, out, "Employees")
	assert.Contains(t, out, "Name, Age, Department")
	assert.Contains(t, out, "sample")
	assert.Less(t, strings.Index(out, "Departments"), strings.Index(out, "Employees"))
}
