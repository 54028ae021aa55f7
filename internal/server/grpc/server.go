// Package grpc exposes the data service to devices over gRPC using the JSON
// codec from internal/api.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/api"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"google.golang.org/grpc"
)

type ProfileStore interface {
	Save(ctx context.Context, p *models.Profile) (bool, error)
	Leaderboard(ctx context.Context, limit int) ([]models.RankedProfile, error)
}

type ActivityStore interface {
	Push(ctx context.Context, userID string, batch []models.Activity) ([]string, error)
}

type JournalExporter interface {
	ExportJournal(ctx context.Context, userID string) (*models.ExportResult, error)
}

type GRPCServer struct {
	address    string
	profiles   ProfileStore
	activities ActivityStore
	exports    JournalExporter
	logger     logging.Logger
	jwtSecret  []byte
}

// NewGRPCServer wires the handlers. exports may be nil when object storage
// is not configured; ExportJournal then fails with Unavailable.
func NewGRPCServer(address string, l logging.Logger, ps ProfileStore, as ActivityStore, ex JournalExporter, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:    address,
		logger:     logging.Module(l, "grpc_server"),
		profiles:   ps,
		activities: as,
		exports:    ex,
		jwtSecret:  []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterDataServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "rpc failed", "method", info.FullMethod, "duration", time.Since(start), "error", err)
	} else {
		s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "duration", time.Since(start))
	}
	return resp, err
}
