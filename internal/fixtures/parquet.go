package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// loadParquet reads a parquet file into one relation named after the file.
// Columns follow the order of the file's top-level schema fields.
func loadParquet(_ context.Context, path string) ([]Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name()
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	var tuples []rel.Tuple
	for {
		row := make(map[string]any)
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		values := make([]any, len(columns))
		for i, c := range columns {
			values[i] = row[c]
		}
		t, err := toTuple(values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(tuples)+1, err)
		}
		tuples = append(tuples, t)
	}

	r, err := rel.NewRelation(columns, tuples)
	if err != nil {
		return nil, err
	}
	return []Fixture{{Name: nameFromPath(path), Relation: r}}, nil
}
