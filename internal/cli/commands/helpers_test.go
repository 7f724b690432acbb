package commands

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leaprel/internal/cli/config"
	"github.com/leapstack-labs/leaprel/internal/testutil"
	"github.com/stretchr/testify/require"
)

// newTestContext returns a command context whose session holds the sample
// fixtures and nothing from disk.
func newTestContext(t *testing.T, format string) *CommandContext {
	t.Helper()

	cfg := &config.Config{
		FixturesDir:  t.TempDir(),
		Sample:       true,
		OutputFormat: format,
		Prompt:       config.DefaultPrompt,
	}
	logger := testutil.NewTestLogger(t)

	session := NewSession(cfg, logger)
	require.NoError(t, session.LoadFixtures(context.Background()))

	return &CommandContext{Cfg: cfg, Logger: logger, Session: session}
}
