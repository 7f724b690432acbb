package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprel/pkg/rel"
)

func TestLoadParquet(t *testing.T) {
	type Row struct {
		Name string `parquet:"name"`
		Age  int64  `parquet:"age"`
	}

	path := filepath.Join(t.TempDir(), "people.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)

	writer := parquet.NewGenericWriter[Row](f)
	_, err = writer.Write([]Row{{Name: "Alice", Age: 32}, {Name: "Bob", Age: 30}})
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())

	fixtures, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	r := fixtures[0].Relation
	assert.Equal(t, "people", fixtures[0].Name)
	assert.ElementsMatch(t, []string{"name", "age"}, r.Columns())
	require.Equal(t, 2, r.Len())

	name, age := r.Index("name"), r.Index("age")
	assert.Equal(t, rel.Str("Alice"), r.Tuple(0).At(name))
	assert.Equal(t, rel.Int(30), r.Tuple(1).At(age))
}

func TestLoadParquetRejectsFloats(t *testing.T) {
	type Row struct {
		Price float64 `parquet:"price"`
	}

	path := filepath.Join(t.TempDir(), "prices.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)

	writer := parquet.NewGenericWriter[Row](f)
	_, err = writer.Write([]Row{{Price: 9.5}})
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())

	_, err = LoadFile(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestLoadParquetInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.parquet")
	require.NoError(t, os.WriteFile(path, []byte("not parquet"), 0o600))

	_, err := LoadFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open parquet file")
}
