//go:build grpcserver

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landLotPlanner/internal/config"
	"landLotPlanner/internal/db"
	grpcserver "landLotPlanner/internal/grpc"
	"landLotPlanner/internal/logging"
	"landLotPlanner/repository"
)

func main() {
	logging.Configure(logging.Config{Service: "planner-server"})
	log := logging.WithComponent("main")

	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log.Info().Str("config", cfg.String()).Msg("configuration loaded")

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error().Err(err).Msg("close db")
		}
	}()

	users := repository.NewUserRepository(d)
	problems := repository.NewProblemRepository(d)
	plans := repository.NewPlanRepository(d)

	// Start gRPC
	shutdown, err := grpcserver.StartGRPC(cfg, users, problems, plans)
	if err != nil {
		log.Fatal().Err(err).Msg("start grpc")
	}
	log.Info().Str("address", cfg.GRPC.Address).Msg("gRPC server listening")

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
