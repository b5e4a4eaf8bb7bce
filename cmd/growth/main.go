// Command growth runs one lattice growth model headlessly and exports its
// checkpoint plates as PNG frames, an MJPEG video and a mass-radius plot.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"lattice-growth/internal/analysis"
	"lattice-growth/internal/app"
	"lattice-growth/internal/core"
	"lattice-growth/internal/render"
	"lattice-growth/internal/sims/dla"
	"lattice-growth/internal/sims/eden"
	"lattice-growth/internal/snapshot"
)

type options struct {
	model   string
	out     string
	scale   int
	fps     int
	frames  bool
	video   bool
	plot    bool
	timeout time.Duration
	set     app.KVList
}

// result is what a model run hands to the exporters.
type result struct {
	shots []snapshot.Snapshot
	stats analysis.ClusterStats
	grid  *core.Grid
	seed  core.Point
}

func main() {
	var opts options
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.StringVar(&opts.model, "model", "eden", "model to run: eden, dla or combined")
	flag.StringVar(&opts.out, "out", "out", "output directory")
	flag.IntVar(&opts.scale, "scale", 3, "pixels per cell in exported images")
	flag.IntVar(&opts.fps, "fps", 10, "frames per second of the exported video")
	flag.BoolVar(&opts.frames, "frames", true, "write one PNG per checkpoint")
	flag.BoolVar(&opts.video, "video", true, "write an MJPEG AVI of the checkpoints")
	flag.BoolVar(&opts.plot, "plot", true, "write a mass-radius plot with the fractal dimension fit")
	flag.DurationVar(&opts.timeout, "timeout", 0, "abort the run after this long (0 disables)")
	flag.Var(&opts.set, "set", "model parameter in key=value form (repeatable)")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	if err := run(ctx, opts); err != nil {
		log.WithError(err).Fatal("run failed")
	}
}

func run(ctx context.Context, opts options) error {
	runID := uuid.New().String()
	dir := filepath.Join(opts.out, runID)
	logger := log.WithFields(log.Fields{"run": runID, "model": opts.model})
	params := opts.set.Map()

	start := time.Now()
	var (
		res result
		err error
	)
	switch opts.model {
	case "eden":
		res, err = runEden(ctx, logger, params)
	case "dla":
		res, err = runDLA(ctx, logger, params)
	case "combined":
		res, err = runCombined(ctx, logger, params)
	default:
		return fmt.Errorf("model %q: %w", opts.model, core.ErrUnknownSim)
	}
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"snapshots": len(res.shots),
		"mass":      res.stats.Mass,
		"radius":    fmt.Sprintf("%.2f", res.stats.MaxRadius),
		"gyration":  fmt.Sprintf("%.2f", res.stats.Gyration),
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Info("growth finished")

	palette := render.DefaultPalette()
	if opts.frames {
		paths, err := render.WriteFrames(filepath.Join(dir, "frames"), opts.model, res.shots, palette, opts.scale)
		if err != nil {
			return fmt.Errorf("write frames: %w", err)
		}
		logger.WithField("count", len(paths)).Info("frames written")
	}
	if opts.video {
		path := filepath.Join(dir, opts.model+".avi")
		if err := render.WriteVideo(path, res.shots, palette, opts.scale, opts.fps); err != nil {
			return fmt.Errorf("write video: %w", err)
		}
		logger.WithField("path", path).Info("video written")
	}
	if opts.plot {
		if err := plotDimension(logger, dir, opts.model, res); err != nil {
			return err
		}
	}
	return nil
}

func runEden(ctx context.Context, logger *log.Entry, params map[string]string) (result, error) {
	cfg := eden.FromMap(params)
	e, err := eden.New(cfg, nil)
	if err != nil {
		return result{}, err
	}
	logger.WithFields(fieldsOf(e.Parameters())).Debug("eden configured")
	shots, err := e.Run(ctx)
	if err != nil {
		return result{}, err
	}
	seed := cfg.Seeds[0]
	return result{shots: shots, grid: e.Grid(), seed: seed, stats: analysis.Measure(e.Grid(), seed)}, nil
}

func runDLA(ctx context.Context, logger *log.Entry, params map[string]string) (result, error) {
	cfg := dla.FromMap(params)
	e, err := dla.New(cfg, nil)
	if err != nil {
		return result{}, err
	}
	logger.WithFields(fieldsOf(e.Parameters())).Debug("dla configured")
	shots, err := e.Run(ctx)
	if err != nil {
		return result{}, err
	}
	st := e.Stats()
	logger.WithFields(log.Fields{
		"spawns": st.Spawns,
		"steps":  st.Steps,
		"jumps":  st.Jumps,
		"kills":  st.Kills,
	}).Info("walkers done")
	return result{shots: shots, grid: e.Grid(), seed: cfg.Seed, stats: analysis.Measure(e.Grid(), cfg.Seed)}, nil
}

// runCombined grows Eden and DLA on equal-sized plates and sums the plates.
// The fractal fit is taken on the DLA cluster.
func runCombined(ctx context.Context, logger *log.Entry, params map[string]string) (result, error) {
	er, err := runEden(ctx, logger, params)
	if err != nil {
		return result{}, err
	}
	dr, err := runDLA(ctx, logger, combinedParams(params))
	if err != nil {
		return result{}, err
	}
	shots, err := snapshot.CompositeSeries(er.shots, dr.shots)
	if err != nil {
		return result{}, err
	}
	dr.shots = shots
	if n := len(shots); n > 0 {
		dr.stats = analysis.MeasureSnapshot(shots[n-1], dr.seed, 1, 2, 3)
	}
	return dr, nil
}

// combinedParams copies params with spawn markers off: a marker reads 3 on
// the DLA plate, the same value as a cell grown by both models.
func combinedParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out["mark_spawns"] = "false"
	return out
}

func plotDimension(logger *log.Entry, dir, model string, res result) error {
	radii := analysis.LogRadii(2, res.stats.MaxRadius, 12)
	samples := analysis.MassRadius(res.grid, res.seed, radii)
	fit, err := analysis.FractalDimension(samples)
	if err != nil {
		logger.WithError(err).Warn("cluster too small for a fractal dimension estimate")
		return nil
	}
	path := filepath.Join(dir, "mass_radius.png")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := analysis.PlotMassRadius(samples, fit, model+" mass-radius", path); err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"dimension": fmt.Sprintf("%.3f", fit.Dimension),
		"r2":        fmt.Sprintf("%.3f", fit.RSquared),
		"path":      path,
	}).Info("fractal dimension")
	return nil
}

func fieldsOf(s core.ParameterSnapshot) log.Fields {
	fields := log.Fields{}
	for k, v := range s.Flatten() {
		fields[k] = v
	}
	return fields
}
