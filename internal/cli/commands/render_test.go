package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/leaprel/internal/cli/config"
	"github.com/leapstack-labs/leaprel/pkg/rel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRelation(t *testing.T) *rel.Relation {
	t.Helper()
	r, err := rel.NewRelation([]string{"Name", "Age", "Note"}, []rel.Tuple{
		rel.NewTuple(rel.Str("Alice"), rel.Int(32), rel.Str("a, b")),
		rel.NewTuple(rel.Str("Bob"), rel.Int(30), rel.Null),
	})
	require.NoError(t, err)
	return r
}

func TestRenderTable(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderValue(buf, testRelation(t), config.OutputTable))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderTableEmpty(t *testing.T) {
	r, err := rel.NewRelation([]string{"a"}, nil)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, renderValue(buf, r, config.OutputTable))
	assert.Contains(t, buf.String(), "(0 rows)")
}

func TestRenderJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderValue(buf, testRelation(t), config.OutputJSON))

	var got struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, []string{"Name", "Age", "Note"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []any{"Alice", float64(32), "a, b"}, got.Rows[0])
	assert.Equal(t, []any{"Bob", float64(30), "NULL"}, got.Rows[1])
}

func TestRenderCSV(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderValue(buf, testRelation(t), config.OutputCSV))
	assert.Equal(t, "Name,Age,Note\nAlice,32,\"a, b\"\nBob,30,NULL\n", buf.String())
}

func TestRenderMarkdown(t *testing.T) {
	r, err := rel.NewRelation([]string{"op", "n"}, []rel.Tuple{
		rel.NewTuple(rel.Str("a|b"), rel.Int(1)),
	})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, renderValue(buf, r, config.OutputMarkdown))
	assert.Equal(t, "| op | n |\n| --- | --- |\n| a\\|b | 1 |\n", buf.String())
}

func TestRenderScalars(t *testing.T) {
	tests := []struct {
		value rel.Value
		want  string
	}{
		{rel.Int(32), "32\n"},
		{rel.Str("Alice"), "Alice\n"},
		{rel.Bool(true), "true\n"},
	}

	for _, format := range config.OutputFormats() {
		for _, tt := range tests {
			t.Run(format+"/"+tt.value.String(), func(t *testing.T) {
				buf := new(bytes.Buffer)
				require.NoError(t, renderValue(buf, tt.value, format))
				assert.Equal(t, tt.want, buf.String())
			})
		}
	}
}

func TestRowCount(t *testing.T) {
	assert.Equal(t, "0 rows", rowCount(0))
	assert.Equal(t, "1 row", rowCount(1))
	assert.Equal(t, "12 rows", rowCount(12))
}
