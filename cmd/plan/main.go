package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landLotPlanner/internal/logging"
	"landLotPlanner/internal/problemfile"
	"landLotPlanner/internal/render"
	"landLotPlanner/internal/solver"
	"landLotPlanner/models"
)

func main() {
	problemPath := flag.String("problem", "", "YAML problem file (defaults to the built-in 60x40 instance)")
	timeLimit := flag.Duration("time-limit", 5*time.Second, "wall-clock solve budget")
	seed := flag.Int64("seed", 0, "RNG seed (0 uses the solver's fixed default stream)")
	iters := flag.Int("iters", 0, "iteration cap per restart (0 means unlimited within the time budget)")
	svgPath := flag.String("svg", "", "write an SVG rendering of the best layout to this path")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Configure(logging.Config{Level: *level, Service: "plan"})
	log := logging.WithComponent("cli")

	p := models.DefaultProblem()
	if *problemPath != "" {
		loaded, err := problemfile.Load(*problemPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *problemPath).Msg("load problem")
		}
		p = loaded
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := solver.Solve(ctx, p, solver.Options{
		TimeLimit: *timeLimit,
		MaxIters:  *iters,
		Seed:      *seed,
		Progress: func(iter, bestYield int) {
			log.Debug().Int("iter", iter).Int("yield", bestYield).Msg("improved")
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("solve")
	}

	log.Info().
		Str("status", string(res.Status)).
		Int("yield", res.Yield).
		Int("bound", res.Bound).
		Int("iters", res.Iters).
		Dur("elapsed", res.Elapsed).
		Msg("solve finished")

	if *svgPath != "" {
		f, err := os.Create(*svgPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *svgPath).Msg("create svg file")
		}
		if err := render.SVG(f, p, &res.Layout); err != nil {
			_ = f.Close()
			log.Fatal().Err(err).Msg("render svg")
		}
		if err := f.Close(); err != nil {
			log.Fatal().Err(err).Msg("close svg file")
		}
		log.Info().Str("path", *svgPath).Msg("svg written")
	}
}
