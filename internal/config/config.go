// Package config holds the regiontrace settings shared by its commands.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/cbehopkins/regiontree/backend"
)

var (
	ErrNegative   = errors.New("config: limits must be >= 0")
	ErrLogFormat  = errors.New("config: log format must be text or json")
	ErrBackendArg = errors.New("config: unknown backend")
)

const (
	defaultBackend   = backend.NameTree23
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config is the resolved configuration of one regiontrace run.
type Config struct {
	Backend       string
	LogLevel      string
	LogFormat     string
	CacheSize     int
	MaxNodes      int
	Degree        int
	MetricsListen string
}

func normalize(cfg Config) (Config, error) {
	if cfg.Backend == "" {
		cfg.Backend = defaultBackend
	}
	if !slices.Contains(backend.Names(), cfg.Backend) {
		return Config{}, fmt.Errorf("%w: %q", ErrBackendArg, cfg.Backend)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = defaultLogFormat
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrLogFormat, cfg.LogFormat)
	}
	if cfg.CacheSize < 0 || cfg.MaxNodes < 0 || cfg.Degree < 0 {
		return Config{}, ErrNegative
	}
	return cfg, nil
}

// BackendOptions converts the tuning fields for backend.Open.
func (c Config) BackendOptions() backend.Options {
	return backend.Options{MaxNodes: c.MaxNodes, Degree: c.Degree}
}

// Flags are the global flags FromCLI reads.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			Usage:   fmt.Sprintf("dictionary backend (one of %v)", backend.Names()),
			Value:   defaultBackend,
			EnvVars: []string{"REGIONTRACE_BACKEND"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			Value:   defaultLogLevel,
			EnvVars: []string{"REGIONTRACE_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log output format (text or json)",
			Value:   defaultLogFormat,
			EnvVars: []string{"REGIONTRACE_LOG_FORMAT"},
		},
		&cli.IntFlag{
			Name:    "cache-size",
			Usage:   "entries in the region lookup cache (0 disables it)",
			EnvVars: []string{"REGIONTRACE_CACHE_SIZE"},
		},
		&cli.IntFlag{
			Name:    "max-nodes",
			Usage:   "cap on live tree23 nodes (0 is unbounded)",
			EnvVars: []string{"REGIONTRACE_MAX_NODES"},
		},
		&cli.IntFlag{
			Name:    "btree-degree",
			Usage:   "degree of the btree backend (0 selects the default)",
			EnvVars: []string{"REGIONTRACE_BTREE_DEGREE"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "address to serve prometheus metrics on (eg: :2112), empty disables",
			EnvVars: []string{"REGIONTRACE_METRICS_LISTEN"},
		},
	}
}

// FromCLI reads and validates the global flags.
func FromCLI(cctx *cli.Context) (Config, error) {
	return normalize(Config{
		Backend:       cctx.String("backend"),
		LogLevel:      cctx.String("log-level"),
		LogFormat:     cctx.String("log-format"),
		CacheSize:     cctx.Int("cache-size"),
		MaxNodes:      cctx.Int("max-nodes"),
		Degree:        cctx.Int("btree-degree"),
		MetricsListen: cctx.String("metrics-listen"),
	})
}
