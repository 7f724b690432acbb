// Package fixtures loads named relations from files and binds them into a
// global scope before queries run.
//
// Supported formats, chosen by file extension:
//
//	.ra              relation definitions in the query language
//	.yaml, .yml      relations: [{name, columns, rows}]
//	.csv             one relation named after the file, header row = columns
//	.db, .sqlite     every user table of a SQLite database
//	.parquet         one relation named after the file
//
// Values are mapped onto the query language's kinds: integers, strings and
// booleans map directly and SQL NULL becomes the "NULL" sentinel. Floating
// point data is rejected.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaprel/pkg/eval"
	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// Fixture is a named relation and the file it came from.
type Fixture struct {
	Name     string
	Source   string
	Relation *rel.Relation
}

type loadFunc func(ctx context.Context, path string) ([]Fixture, error)

var formats = map[string]loadFunc{
	".ra":      loadScript,
	".yaml":    loadYAML,
	".yml":     loadYAML,
	".csv":     loadCSV,
	".db":      loadSQLite,
	".sqlite":  loadSQLite,
	".parquet": loadParquet,
}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	_, ok := formats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LoadFile loads every relation defined in the file at path.
func LoadFile(ctx context.Context, path string) ([]Fixture, error) {
	load, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	fixtures, err := load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture %s: %w", path, err)
	}
	for i := range fixtures {
		fixtures[i].Source = path
	}
	return fixtures, nil
}

// Bind binds every fixture into g. When names repeat, the later fixture wins.
func Bind(g *eval.Globals, fixtures []Fixture) {
	for _, f := range fixtures {
		g.Set(f.Name, f.Relation)
	}
}

// Loader loads fixture files concurrently.
type Loader struct {
	logger      *slog.Logger
	concurrency int
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger, concurrency: 4}
}

// LoadDir loads every supported file in dir, ordered by file name. A missing
// directory is not an error.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Fixture, error) {
	if dir == "" {
		return nil, nil
	}

	l.logger.Debug("loading fixtures", "fixtures_dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No fixtures directory is OK
		}
		return nil, fmt.Errorf("failed to read fixtures directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return l.LoadFiles(ctx, paths)
}

// LoadFiles loads the given files in parallel. Results keep the order of
// paths, then the order of definition within each file.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]Fixture, error) {
	results := make([][]Fixture, len(paths))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(l.concurrency)
	for i, path := range paths {
		eg.Go(func() error {
			l.logger.Debug("loading fixture", "path", path)
			fixtures, err := LoadFile(egctx, path)
			if err != nil {
				return err
			}
			results[i] = fixtures
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out []Fixture
	for _, fixtures := range results {
		out = append(out, fixtures...)
	}
	l.logger.Debug("loaded fixtures", "files", len(paths), "relations", len(out))
	return out, nil
}

// nameFromPath returns the file name without its extension.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
