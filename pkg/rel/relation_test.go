package rel_test

import (
	"testing"

	"github.com/leapstack-labs/leaprel/pkg/rel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelationValidatesTuples(t *testing.T) {
	inner := mustRelation(t, []string{"x"})

	tests := []struct {
		name    string
		columns []string
		tuples  []rel.Tuple
		wantErr error
	}{
		{
			name:    "empty relation",
			columns: []string{"a", "b"},
		},
		{
			name:    "matching arity",
			columns: []string{"a", "b"},
			tuples:  []rel.Tuple{rel.NewTuple(rel.Int(1), rel.Str("x"))},
		},
		{
			name:    "short tuple",
			columns: []string{"a", "b"},
			tuples:  []rel.Tuple{rel.NewTuple(rel.Int(1))},
			wantErr: rel.ErrArity,
		},
		{
			name:    "relation inside tuple",
			columns: []string{"a"},
			tuples:  []rel.Tuple{rel.NewTuple(inner)},
			wantErr: rel.ErrNotScalar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := rel.NewRelation(tt.columns, tt.tuples)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.tuples), r.Len())
			assert.Equal(t, len(tt.columns), r.Arity())
		})
	}
}

func TestRelationIsImmutable(t *testing.T) {
	cols := []string{"a"}
	values := []rel.Value{rel.Int(1)}
	tuple := rel.NewTuple(values...)
	r, err := rel.NewRelation(cols, []rel.Tuple{tuple})
	require.NoError(t, err)

	cols[0] = "changed"
	values[0] = rel.Int(99)
	r.Columns()[0] = "changed"
	r.Tuple(0).Values()[0] = rel.Int(42)

	assert.Equal(t, []string{"a"}, r.Columns())
	assert.Equal(t, rel.Int(1), r.Tuple(0).At(0))
}

func TestTupleEqual(t *testing.T) {
	assert.True(t, rel.NewTuple(rel.Int(5), rel.Str("x")).Equal(rel.NewTuple(rel.Int(5), rel.Str("x"))))
	assert.False(t, rel.NewTuple(rel.Int(5)).Equal(rel.NewTuple(rel.Str("5"))))
	assert.False(t, rel.NewTuple(rel.Int(5)).Equal(rel.NewTuple(rel.Int(5), rel.Int(5))))
}

func TestEquivalentIgnoresOrder(t *testing.T) {
	a := mustRelation(t, []string{"k"}, row(rel.Int(1)), row(rel.Int(2)))
	b := mustRelation(t, []string{"k"}, row(rel.Int(2)), row(rel.Int(1)), row(rel.Int(1)))
	c := mustRelation(t, []string{"j"}, row(rel.Int(1)), row(rel.Int(2)))

	assert.True(t, rel.Equivalent(a, b))
	assert.False(t, rel.Equivalent(a, c))
}

func TestRowLookupLastColumnWins(t *testing.T) {
	r := rel.Row{
		Columns: []string{"k", "v", "k"},
		Tuple:   rel.NewTuple(rel.Int(1), rel.Int(2), rel.Int(3)),
	}

	v, ok := r.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, rel.Int(3), v)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestValueRendering(t *testing.T) {
	r := mustRelation(t, []string{"Name", "Age"}, row(rel.Str("Alice"), rel.Int(32)))

	assert.Equal(t, "Integer", rel.Int(1).Kind().String())
	assert.Equal(t, "Relation", r.Kind().String())
	assert.Equal(t, `Relation{(Name, Age) [("Alice", 32)]}`, r.String())
	assert.Equal(t, "true", rel.Bool(true).String())
	assert.True(t, rel.IsNull(rel.Str("NULL")))
	assert.False(t, rel.IsNull(rel.Int(0)))
}
