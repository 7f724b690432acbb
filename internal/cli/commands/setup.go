package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leaprel/internal/cli/config"
	"github.com/leapstack-labs/leaprel/internal/fixtures"
	"github.com/leapstack-labs/leaprel/pkg/eval"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Session *Session
}

// NewCommandContext creates a CommandContext with a session whose global
// scope holds every configured fixture.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if err := cfg.ValidateFixtures(); err != nil {
		return nil, err
	}

	session := NewSession(cfg, logger)
	if err := session.LoadFixtures(cmd.Context()); err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:     cfg,
		Logger:  logger,
		Session: session,
	}, nil
}

// getConfig returns the current configuration, or defaults when none has
// been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		FixturesDir:  config.DefaultFixturesDir,
		OutputFormat: config.DefaultOutput,
		HistoryFile:  config.DefaultHistoryFile,
		Prompt:       config.DefaultPrompt,
	}
}

// Session is the state shared by every statement a command runs: the
// global scope and the fixtures bound into it.
type Session struct {
	Globals *eval.Globals

	cfg     *config.Config
	logger  *slog.Logger
	loader  *fixtures.Loader
	sources map[string]string // relation name -> fixture source
}

// NewSession creates a session with an empty global scope.
func NewSession(cfg *config.Config, logger *slog.Logger) *Session {
	return &Session{
		Globals: eval.NewGlobals(),
		cfg:     cfg,
		logger:  logger,
		loader:  fixtures.NewLoader(logger),
		sources: make(map[string]string),
	}
}

// LoadFixtures binds the sample relations (if enabled), the fixtures
// directory and the explicitly listed fixture files, in that order.
// Relations defined interactively survive unless a fixture redefines them.
func (s *Session) LoadFixtures(ctx context.Context) error {
	var all []fixtures.Fixture
	if s.cfg.Sample {
		all = append(all, fixtures.Sample()...)
	}

	fromDir, err := s.loader.LoadDir(ctx, s.cfg.FixturesDir)
	if err != nil {
		return err
	}
	all = append(all, fromDir...)

	fromFiles, err := s.loader.LoadFiles(ctx, s.cfg.Fixtures)
	if err != nil {
		return err
	}
	all = append(all, fromFiles...)

	s.bind(all)
	return nil
}

// LoadFile binds the relations of a single fixture file.
func (s *Session) LoadFile(ctx context.Context, path string) ([]fixtures.Fixture, error) {
	loaded, err := s.loader.LoadFiles(ctx, []string{path})
	if err != nil {
		return nil, err
	}
	s.bind(loaded)
	return loaded, nil
}

func (s *Session) bind(loaded []fixtures.Fixture) {
	fixtures.Bind(s.Globals, loaded)
	for _, f := range loaded {
		s.sources[f.Name] = f.Source
	}
}

// Exec runs src against the global scope. Relations it defines stay bound
// even when a later statement fails.
func (s *Session) Exec(src string) ([]*eval.Result, error) {
	results, err := eval.Run(src, s.Globals)
	for _, res := range results {
		if res.Defined() {
			s.sources[res.Name] = "query"
			s.logger.Debug("relation defined", "name", res.Name)
		}
	}
	return results, err
}

// Source returns where the named relation came from.
func (s *Session) Source(name string) string {
	return s.sources[name]
}

// WatchPaths returns the fixture locations to watch for changes.
func (s *Session) WatchPaths() []string {
	paths := make([]string, 0, len(s.cfg.Fixtures)+1)
	if s.cfg.FixturesDir != "" {
		paths = append(paths, s.cfg.FixturesDir)
	}
	return append(paths, s.cfg.Fixtures...)
}
