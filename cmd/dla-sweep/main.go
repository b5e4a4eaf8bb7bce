// Command dla-sweep grows DLA clusters over a grid of walker radii in parallel
// and ranks the settings by their fractal dimension estimate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"lattice-growth/internal/analysis"
	"lattice-growth/internal/app"
	"lattice-growth/internal/sims/dla"
)

type radii struct {
	spawn, jump, kill float64
}

func (r radii) String() string {
	return fmt.Sprintf("spawn=%.0f jump=%.0f kill=%.0f", r.spawn, r.jump, r.kill)
}

type job struct {
	radii   radii
	rngSeed int64
}

type scenarioResult struct {
	job       job
	stats     analysis.ClusterStats
	walk      dla.Stats
	dimension float64
	r2        float64
	elapsed   time.Duration
	err       error
}

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	particles := flag.Int("particles", 1500, "particles aggregated per run")
	replicates := flag.Int("replicates", 2, "independent RNG seeds per radius setting")
	top := flag.Int("top", 5, "number of best settings to report")
	verbose := flag.Bool("v", false, "log every finished run")
	var overrides app.KVList
	flag.Var(&overrides, "set", "base parameter override in key=value form (repeatable)")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	base := dla.FromMap(overrides.Map())
	base.Particles = *particles
	base.Checkpoints = 0

	spawnOptions := []float64{20, 30, 40}
	jumpGaps := []float64{5, 15}
	killGaps := []float64{10, 25}

	var jobs []job
	for _, spawn := range spawnOptions {
		for _, jg := range jumpGaps {
			for _, kg := range killGaps {
				r := radii{spawn: spawn, jump: spawn + jg, kill: spawn + jg + kg}
				for rep := 0; rep < *replicates; rep++ {
					jobs = append(jobs, job{radii: r, rngSeed: base.RNGSeed + int64(rep)})
				}
			}
		}
	}

	sweepID := uuid.New().String()
	logger := log.WithField("sweep", sweepID)
	logger.WithFields(log.Fields{
		"runs":      len(jobs),
		"workers":   *workers,
		"particles": *particles,
	}).Info("sweeping DLA radii")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := sweep(ctx, base, jobs, *workers)

	var ok []scenarioResult
	for _, res := range results {
		entry := logger.WithFields(log.Fields{"radii": res.job.radii.String(), "rng": res.job.rngSeed})
		if res.err != nil {
			entry.WithError(res.err).Warn("run failed")
			continue
		}
		entry.WithFields(log.Fields{
			"mass":      res.stats.Mass,
			"gyration":  fmt.Sprintf("%.2f", res.stats.Gyration),
			"dimension": fmt.Sprintf("%.3f", res.dimension),
			"kills":     res.walk.Kills,
			"elapsed":   res.elapsed.Round(time.Millisecond),
		}).Debug("run finished")
		ok = append(ok, res)
	}

	sort.Slice(ok, func(i, j int) bool { return ok[i].dimension > ok[j].dimension })
	logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("sweep finished")
	for i := 0; i < len(ok) && i < *top; i++ {
		res := ok[i]
		logger.WithFields(log.Fields{
			"rank":      i + 1,
			"radii":     res.job.radii.String(),
			"rng":       res.job.rngSeed,
			"dimension": fmt.Sprintf("%.3f", res.dimension),
			"r2":        fmt.Sprintf("%.3f", res.r2),
			"radius":    fmt.Sprintf("%.1f", res.stats.MaxRadius),
			"steps":     res.walk.Steps,
		}).Info("top setting")
	}
}

// sweep runs every job on a pool of workers. Each run owns its engine and RNG.
func sweep(ctx context.Context, base dla.Config, all []job, workers int) []scenarioResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan job)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runScenario(ctx, base, j)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range all {
			jobs <- j
		}
		close(jobs)
	}()

	out := make([]scenarioResult, 0, len(all))
	for res := range results {
		out = append(out, res)
	}
	return out
}

func runScenario(ctx context.Context, base dla.Config, j job) scenarioResult {
	start := time.Now()
	cfg := base
	cfg.SpawnRadius = j.radii.spawn
	cfg.JumpRadius = j.radii.jump
	cfg.KillRadius = j.radii.kill
	cfg.RNGSeed = j.rngSeed

	res := scenarioResult{job: j}
	e, err := dla.New(cfg, nil)
	if err != nil {
		res.err = err
		return res
	}
	if _, err := e.Run(ctx); err != nil {
		res.err = err
		return res
	}
	res.stats = analysis.Measure(e.Grid(), cfg.Seed)
	res.walk = e.Stats()
	samples := analysis.MassRadius(e.Grid(), cfg.Seed, analysis.LogRadii(2, res.stats.MaxRadius, 10))
	fit, err := analysis.FractalDimension(samples)
	if err != nil {
		res.err = err
		return res
	}
	res.dimension = fit.Dimension
	res.r2 = fit.RSquared
	res.elapsed = time.Since(start)
	return res
}
