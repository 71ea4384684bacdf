//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"mad-sand/internal/app"
	"mad-sand/internal/core"
	_ "mad-sand/internal/scenes"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := log.New(os.Stderr, "[sand] ", log.LstdFlags|log.Lmicroseconds)

	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.New(cfg.Sim, cfg.SimOptions())
	if err != nil {
		logger.Fatalf("start %s: %v", cfg.Sim, err)
	}
	if c, ok := sim.(interface{ Close() }); ok {
		defer c.Close()
	}

	game := app.New(sim, cfg.Scale, cfg.Seed, cfg.HUDWidth)
	size := sim.Size()
	logger.Printf("scene=%s grid=%dx%d", sim.Name(), size.W, size.H)

	ebiten.SetWindowTitle("mad-sand: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
