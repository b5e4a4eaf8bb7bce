//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lattice-growth/internal/app"
	"lattice-growth/internal/core"
	_ "lattice-growth/internal/sims/dla"
	_ "lattice-growth/internal/sims/eden"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.NewSim(cfg.Sim, cfg.Set.Map())
	if err != nil {
		log.Fatalf("create %s: %v (available: %v)", cfg.Sim, err, core.SimNames())
	}
	if err := sim.Reset(cfg.Seed); err != nil {
		log.Fatalf("reset %s: %v", cfg.Sim, err)
	}

	game := app.New(sim, cfg.Scale, cfg.Rate, cfg.Panel, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("lattice growth: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.Panel, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
