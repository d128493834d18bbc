package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	rt "github.com/cbehopkins/regiontree"
	"github.com/cbehopkins/regiontree/backend"
	"github.com/cbehopkins/regiontree/btreedict"
	"github.com/cbehopkins/regiontree/dict"
	"github.com/cbehopkins/regiontree/internal/config"
	"github.com/cbehopkins/regiontree/internal/logging"
	"github.com/cbehopkins/regiontree/internal/trace"
	"github.com/cbehopkins/regiontree/region"
	"github.com/cbehopkins/regiontree/treap"
	"github.com/cbehopkins/regiontree/tree23"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting process", "err", err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp(os.Stdout, os.Stderr).Run(args)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "regiontrace",
		Usage:     "replay address-region traces against an ordered dictionary backend",
		Flags:     config.Flags(),
		Writer:    stdout,
		ErrWriter: stderr,
	}
	app.Commands = []*cli.Command{
		&cli.Command{
			Name:      "replay",
			Usage:     "run a trace file against the selected backend",
			ArgsUsage: "<path>",
			Action:    runReplay,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "dump",
					Usage: "print the final dictionary contents",
				},
			},
		},
		&cli.Command{
			Name:   "generate",
			Usage:  "write a random trace",
			Action: runGenerate,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "count",
					Usage: "number of operations",
					Value: 1000,
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed (0 picks one)",
				},
				&cli.StringFlag{
					Name:  "out",
					Usage: "output path (default stdout)",
				},
				&cli.Uint64Flag{
					Name:  "space",
					Usage: "size of the simulated address space",
					Value: 1 << 24,
				},
				&cli.UintFlag{
					Name:  "max-range",
					Usage: "largest region size",
					Value: 4096,
				},
			},
		},
		&cli.Command{
			Name:  "backends",
			Usage: "list available dictionary backends",
			Action: func(cctx *cli.Context) error {
				for _, name := range backend.Names() {
					fmt.Fprintln(cctx.App.Writer, name)
				}
				return nil
			},
		},
	}
	return app
}

// setup resolves config, installs the logger and starts the metrics
// listener when one is configured.
func setup(cctx *cli.Context) (config.Config, *slog.Logger, error) {
	cfg, err := config.FromCLI(cctx)
	if err != nil {
		return cfg, nil, err
	}
	logger := logging.New(cctx.App.ErrWriter, cfg.LogLevel, cfg.LogFormat)

	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsListen, mux); err != nil {
				logger.Error("metrics listener failed", "addr", cfg.MetricsListen, "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", cfg.MetricsListen)
	}
	return cfg, logger, nil
}

func runReplay(cctx *cli.Context) error {
	cfg, logger, err := setup(cctx)
	if err != nil {
		return err
	}
	p := cctx.Args().First()
	if p == "" {
		return fmt.Errorf("need to provide path to trace file")
	}

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()
	ops, err := trace.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}

	opts := cfg.BackendOptions()
	opts.Logger = logger
	d, err := backend.Open[*rt.Region](cfg.Backend, rt.CompareRegions, rt.RegionScore, opts)
	if err != nil {
		return err
	}

	var ropts []region.Option
	ropts = append(ropts, region.WithLogger(logger))
	if cfg.CacheSize > 0 {
		ropts = append(ropts, region.WithLookupCache(cfg.CacheSize))
	}
	tracker, err := region.New(dict.Instrument(d, cfg.Backend), ropts...)
	if err != nil {
		d.Release()
		return err
	}
	defer tracker.Close()

	logger.Info("replaying trace", "path", p, "ops", len(ops), "backend", cfg.Backend)
	summary, err := trace.Replay(tracker, ops, logger)
	if err != nil {
		return err
	}
	if err := summary.Print(cctx.App.Writer); err != nil {
		return err
	}
	if hits, misses := tracker.CacheStats(); hits+misses > 0 {
		fmt.Fprintf(cctx.App.Writer, "cache hit %d miss %d\n", hits, misses)
	}

	if cctx.Bool("dump") {
		return dump(cctx.App.Writer, d)
	}
	return nil
}

// dump prints the regions held by d in the backend's own form.
func dump(w io.Writer, d dict.Dictionary[*rt.Region]) error {
	format := func(r *rt.Region) string { return r.String() }
	switch v := d.(type) {
	case *tree23.Tree[*rt.Region]:
		return v.Print(w, format)
	case *treap.Treap[*rt.Region]:
		var b strings.Builder
		v.Walk(func(n *treap.TreapNode[*rt.Region]) {
			fmt.Fprintf(&b, "%s priority %d\n", format(n.Item()), n.Priority())
		})
		_, err := io.WriteString(w, b.String())
		return err
	case *btreedict.Dict[*rt.Region]:
		var err error
		v.Ascend(func(r *rt.Region) bool {
			_, err = fmt.Fprintln(w, format(r))
			return err == nil
		})
		return err
	}
	return fmt.Errorf("cannot dump %T", d)
}

func runGenerate(cctx *cli.Context) error {
	if _, _, err := setup(cctx); err != nil {
		return err
	}
	faker := gofakeit.New(cctx.Int64("seed"))
	ops := trace.Generate(faker, trace.GenConfig{
		Count:    cctx.Int("count"),
		Space:    cctx.Uint64("space"),
		MaxRange: uint32(cctx.Uint("max-range")),
	})

	w := cctx.App.Writer
	if out := cctx.String("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return trace.Write(w, ops)
}
