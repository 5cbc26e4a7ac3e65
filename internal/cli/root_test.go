package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name()
	}

	assert.Contains(t, names, "recap")
	assert.Contains(t, names, "roles")
	assert.Contains(t, names, "days-off")
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "version")
}

func TestRootUseName(t *testing.T) {
	assert.Equal(t, "rekap", rootCmd.Use)
}

func TestRootVerboseFlag(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, f)
	assert.Equal(t, "v", f.Shorthand)
	assert.Equal(t, "false", f.DefValue)
}

func TestGetLoggerDefaultsToNop(t *testing.T) {
	saved := logger
	logger = nil
	defer func() { logger = saved }()

	assert.NotNil(t, getLogger())
}
