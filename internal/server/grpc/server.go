package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address    string
	ledger     *rememberme.Ledger
	cookieName string
	issuerKey  string
	logger     logging.Logger
	public     map[string]bool
}

// NewGRPCServer builds the gRPC server. Issue is answered only for callers
// presenting issuerKey; an empty key disables issuance.
func NewGRPCServer(a string, l logging.Logger, ledger *rememberme.Ledger, issuerKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		ledger:     ledger,
		cookieName: ledger.Options().CookieName,
		issuerKey:  issuerKey,
		public: map[string]bool{
			RevokeMethod: true,
		},
	}, nil
}

// newGRPC builds the grpc.Server with the remember-me interceptor, the
// RememberMe service and the standard health service registered.
func (s *GRPCServer) newGRPC() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.rememberMeInterceptor),
		grpc.ChainStreamInterceptor(s.rememberMeStreamInterceptor),
	)

	RegisterRememberMeServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, hs
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve runs the server on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv, hs := s.newGRPC()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections; a stop that wins the race with
	// Serve is still a clean shutdown
	if err := srv.Serve(listen); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}
