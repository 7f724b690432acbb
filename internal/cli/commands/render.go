package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leaprel/internal/cli/config"
	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// renderValue writes v in the given output format. Scalars are written as
// their literal text regardless of format.
func renderValue(w io.Writer, v rel.Value, format string) error {
	r, ok := v.(*rel.Relation)
	if !ok {
		_, err := fmt.Fprintln(w, v.String())
		return err
	}

	switch format {
	case config.OutputJSON:
		return renderJSON(w, r)
	case config.OutputCSV:
		return renderCSV(w, r)
	case config.OutputMarkdown:
		return renderMarkdown(w, r)
	default:
		return renderTable(w, r)
	}
}

func renderTable(w io.Writer, r *rel.Relation) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, r.Arity())
	for i, col := range r.Columns() {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, tup := range r.Tuples() {
		row := make(table.Row, tup.Len())
		for i, v := range tup.Values() {
			row[i] = v.String()
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%s)\n", rowCount(r.Len()))
	return nil
}

type jsonRelation struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func renderJSON(w io.Writer, r *rel.Relation) error {
	out := jsonRelation{
		Columns: r.Columns(),
		Rows:    make([][]any, 0, r.Len()),
	}
	for _, tup := range r.Tuples() {
		row := make([]any, tup.Len())
		for i, v := range tup.Values() {
			row[i] = jsonValue(v)
		}
		out.Rows = append(out.Rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonValue(v rel.Value) any {
	switch x := v.(type) {
	case rel.Int:
		return int64(x)
	case rel.Bool:
		return bool(x)
	default:
		return v.String()
	}
}

func renderCSV(w io.Writer, r *rel.Relation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns()); err != nil {
		return err
	}
	for _, tup := range r.Tuples() {
		if err := cw.Write(cells(tup)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderMarkdown(w io.Writer, r *rel.Relation) error {
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(r.Columns(), " | "))
	seps := make([]string, r.Arity())
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, tup := range r.Tuples() {
		values := cells(tup)
		for i, v := range values {
			values[i] = strings.ReplaceAll(v, "|", `\|`)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func cells(t rel.Tuple) []string {
	out := make([]string, t.Len())
	for i, v := range t.Values() {
		out[i] = v.String()
	}
	return out
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
