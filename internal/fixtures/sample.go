package fixtures

import "github.com/leapstack-labs/leaprel/pkg/rel"

// Sample returns the built-in demonstration relations.
func Sample() []Fixture {
	return []Fixture{
		{
			Name:   "Employees",
			Source: "sample",
			Relation: mustRelation([]string{"Name", "Age", "Department"},
				[]rel.Value{rel.Str("Alice"), rel.Int(32), rel.Str("Finance")},
				[]rel.Value{rel.Str("Bob"), rel.Int(30), rel.Str("Finance")},
			),
		},
		{
			Name:   "Departments",
			Source: "sample",
			Relation: mustRelation([]string{"Department", "Floor"},
				[]rel.Value{rel.Str("Finance"), rel.Int(3)},
				[]rel.Value{rel.Str("Sales"), rel.Int(2)},
			),
		},
	}
}

func mustRelation(columns []string, rows ...[]rel.Value) *rel.Relation {
	tuples := make([]rel.Tuple, len(rows))
	for i, r := range rows {
		tuples[i] = rel.NewTuple(r...)
	}
	r, err := rel.NewRelation(columns, tuples)
	if err != nil {
		panic(err)
	}
	return r
}
