package fixtures

import (
	"context"
	"os"

	"github.com/leapstack-labs/leaprel/pkg/eval"
	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// loadScript runs a file of statements against a scratch scope and returns
// each relation it defines, in definition order. Expression statements may
// refer to earlier definitions; their results are discarded.
func loadScript(_ context.Context, path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	results, err := eval.Run(string(data), eval.NewGlobals())
	if err != nil {
		return nil, err
	}

	var fixtures []Fixture
	for _, res := range results {
		if !res.Defined() {
			continue
		}
		fixtures = append(fixtures, Fixture{Name: res.Name, Relation: res.Value.(*rel.Relation)})
	}
	return fixtures, nil
}
