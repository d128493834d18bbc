package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// parse runs a throwaway app over args and returns what FromCLI saw.
func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var (
		cfg Config
		err error
	)
	app := &cli.App{
		Name:  "regiontrace",
		Flags: Flags(),
		Action: func(cctx *cli.Context) error {
			cfg, err = FromCLI(cctx)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"regiontrace"}, args...)))
	return cfg, err
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Backend:   "tree23",
		LogLevel:  "info",
		LogFormat: "text",
	}, cfg)
}

func TestFlags(t *testing.T) {
	cfg, err := parse(t, "--backend", "btree", "--cache-size", "64", "--btree-degree", "8", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, "btree", cfg.Backend)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 8, cfg.BackendOptions().Degree)
}

func TestEnvVars(t *testing.T) {
	t.Setenv("REGIONTRACE_BACKEND", "treap")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REGIONTRACE_MAX_NODES", "100")
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, "treap", cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 100, cfg.BackendOptions().MaxNodes)
}

func TestNormalizeRejects(t *testing.T) {
	_, err := normalize(Config{Backend: "avl"})
	assert.ErrorIs(t, err, ErrBackendArg)

	_, err = normalize(Config{LogFormat: "xml"})
	assert.ErrorIs(t, err, ErrLogFormat)

	_, err = normalize(Config{CacheSize: -1})
	assert.ErrorIs(t, err, ErrNegative)
}
