package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/cashroute/cashroute/pkg/auth"
	"github.com/cashroute/cashroute/pkg/tlsutil"
)

const serviceName = "routing-service"

// Server wraps the gRPC server with the routing service handler.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
	handler      *RoutingHandler
	port         int
	logger       *slog.Logger
}

// NewServer creates a new gRPC server with the provided handler. When
// certFile and keyFile are both set the listener serves TLS; otherwise it is
// plaintext (local development).
func NewServer(handler *RoutingHandler, port int, logger *slog.Logger, jwtService *auth.JWTService, certFile, keyFile string) (*Server, error) {
	// Add auth interceptor, skipping health check methods.
	authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})

	opts := []grpc.ServerOption{grpc.UnaryInterceptor(authInterceptor)}
	if certFile != "" && keyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS credentials: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
	}

	grpcServer := grpc.NewServer(opts...)
	healthServer := health.NewServer()

	healthpb.RegisterHealthServer(grpcServer, healthServer)
	RegisterRoutingServiceServer(grpcServer, handler)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer:   grpcServer,
		healthServer: healthServer,
		handler:      handler,
		port:         port,
		logger:       logger,
	}, nil
}

// Start begins listening for gRPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	s.logger.Info("gRPC server starting", "port", s.port)

	s.healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	if err := s.grpcServer.Serve(listener); err != nil {
		return fmt.Errorf("gRPC server failed: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("stopping gRPC server")
	s.healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_NOT_SERVING)
	s.grpcServer.GracefulStop()
}
