package fixtures

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/leaprel/pkg/rel"
)

func loadCSV(_ context.Context, path string) ([]Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r, err := parseCSV(f)
	if err != nil {
		return nil, err
	}
	return []Fixture{{Name: nameFromPath(path), Relation: r}}, nil
}

// parseCSV reads a header row of column names followed by data rows.
func parseCSV(src io.Reader) (*rel.Relation, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var tuples []rel.Tuple
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		vals := make([]rel.Value, len(record))
		for i, cell := range record {
			vals[i] = parseCell(cell)
		}
		tuples = append(tuples, rel.NewTuple(vals...))
	}
	return rel.NewRelation(header, tuples)
}
