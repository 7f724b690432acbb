// Package main provides tests for the leaprel CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leaprel/internal/cli"
	"github.com/leapstack-labs/leaprel/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "..", "testdata")
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leaprel v")
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"query", "parse", "fixtures", "version", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestQueryOverFixtures(t *testing.T) {
	fixtures := filepath.Join(testdataDir(t), "fixtures")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "natural join across file formats",
			args: []string{"query", "-o", "csv", "--fixtures-dir", fixtures,
				"project Name, Floor (Employees join project Department, Floor Departments)"},
			want: "Name,Floor\nAlice,3\nBob,3\nCarol,2\n",
		},
		{
			name: "left join with yaml relation",
			args: []string{"query", "-o", "csv", "--fixtures-dir", fixtures,
				"project Department, Label (Departments left_join Floor == Level Floors)"},
			want: "Department,Label\nFinance,Third\nSales,Second\nMarketing,NULL\n",
		},
		{
			name: "csv relation",
			args: []string{"query", "-o", "csv", "--fixtures-dir", fixtures,
				"project Name (Employees join Managers)"},
			want: "Name\nAlice\nCarol\n",
		},
		{
			name: "explicit fixture file and sample",
			args: []string{"query", "-o", "csv", "--sample", "--fixture", filepath.Join(fixtures, "floors.yaml"),
				"project Label (Departments theta_join Floor == Level Floors)"},
			want: "Label\nThird\nSecond\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown relation", args: []string{"query", "Nowhere"}, want: "unknown identifier"},
		{name: "invalid output", args: []string{"query", "-o", "xml", "1"}, want: "invalid output format"},
		{name: "missing fixture", args: []string{"query", "--fixture", "missing.csv", "1"}, want: "fixture file does not exist"},
		{name: "parse error", args: []string{"query", "select )"}, want: "parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFixturesCommand(t *testing.T) {
	out, err := run(t, "fixtures", "--fixtures-dir", filepath.Join(testdataDir(t), "fixtures"))
	require.NoError(t, err)

	for _, name := range []string{"Employees", "Departments", "Floors", "Managers"} {
		assert.Contains(t, out, name)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leaprel")
}
