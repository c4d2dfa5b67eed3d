package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparables-api/internal/config"
	"github.com/sells-group/comparables-api/pkg/searx"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"serve", "lookup", "comparables", "analyze"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "comparables-api", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestLookupCommand_Flags(t *testing.T) {
	flag := lookupCmd.Flags().Lookup("detailed")
	require.NotNil(t, flag, "lookup command should have --detailed flag")

	flag = lookupCmd.Flags().Lookup("retries")
	require.NotNil(t, flag, "lookup command should have --retries flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestComparablesCommand_Flags(t *testing.T) {
	flag := comparablesCmd.Flags().Lookup("max")
	require.NotNil(t, flag, "comparables command should have --max flag")
	assert.Equal(t, "10", flag.DefValue)

	flag = comparablesCmd.Flags().Lookup("min-similarity")
	require.NotNil(t, flag, "comparables command should have --min-similarity flag")
	assert.Equal(t, "30", flag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestPortFallsBackToConfig(t *testing.T) {
	origCfg, origPort := cfg, servePort
	t.Cleanup(func() { cfg, servePort = origCfg, origPort })

	cfg = &config.Config{Server: config.ServerConfig{Port: 8080}}

	servePort = 0
	assert.Equal(t, 8080, port())

	servePort = 9090
	assert.Equal(t, 9090, port())
}

func TestWithRetries_NoRetriesCallsOnce(t *testing.T) {
	calls := 0
	_, err := withRetries(context.Background(), 0, func(ctx context.Context) (int, error) {
		calls++
		return 0, &searx.TimeoutError{Query: "acme", Elapsed: "30s"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetries_RetriesTransientFailure(t *testing.T) {
	calls := 0
	val, err := withRetries(context.Background(), 1, func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, &searx.TimeoutError{Query: "acme", Elapsed: "30s"}
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 2, calls)
}

func TestWithRetries_DoesNotRetryAuthFailure(t *testing.T) {
	calls := 0
	_, err := withRetries(context.Background(), 2, func(ctx context.Context) (int, error) {
		calls++
		return 0, &searx.AuthError{Status: 401, Body: "invalid_client"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
