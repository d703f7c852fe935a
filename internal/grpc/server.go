//go:build grpcserver

package grpcserver

import (
	"context"
	"net"

	plannerv1 "landLotPlanner/api/planner/v1"
	"landLotPlanner/internal/auth"
	"landLotPlanner/internal/config"
	"landLotPlanner/repository"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// StartGRPC starts the gRPC server on the given address and returns a shutdown function.
// The server implements PlannerService and AdminService with authentication interceptor.
func StartGRPC(cfg *config.Config, users *repository.UserRepository, problems *repository.ProblemRepository, plans *repository.PlanRepository) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	// Allow plaintext for simplicity; in production, configure TLS.
	_ = insecure.NewCredentials

	srv := grpc.NewServer(grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, healthCheckMethod)))

	// Register Planner Service.
	s := &Server{Users: users, Problems: problems, Plans: plans, Solver: cfg.Solver}
	plannerv1.RegisterPlannerServiceServer(srv, s)

	// Register Admin Service.
	as := &AdminServer{Users: users, Problems: problems, Plans: plans}
	plannerv1.RegisterAdminServiceServer(srv, as)

	go func() { _ = srv.Serve(lis) }()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
