package fixtures

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// yamlFile is the document layout of a YAML fixture.
type yamlFile struct {
	Relations []yamlRelation `yaml:"relations"`
}

type yamlRelation struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

func loadYAML(_ context.Context, path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseYAML(data)
}

func parseYAML(data []byte) ([]Fixture, error) {
	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	fixtures := make([]Fixture, 0, len(doc.Relations))
	for i, r := range doc.Relations {
		if r.Name == "" {
			return nil, fmt.Errorf("relation %d: name is required", i+1)
		}
		if len(r.Columns) == 0 {
			return nil, fmt.Errorf("relation %s: columns are required", r.Name)
		}

		tuples := make([]rel.Tuple, len(r.Rows))
		for j, row := range r.Rows {
			t, err := toTuple(row)
			if err != nil {
				return nil, fmt.Errorf("relation %s row %d: %w", r.Name, j+1, err)
			}
			tuples[j] = t
		}
		relation, err := rel.NewRelation(r.Columns, tuples)
		if err != nil {
			return nil, fmt.Errorf("relation %s: %w", r.Name, err)
		}
		fixtures = append(fixtures, Fixture{Name: r.Name, Relation: relation})
	}
	return fixtures, nil
}
