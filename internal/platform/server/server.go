package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/codex-employee-directory/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	logger     zerolog.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// すべての unary 呼び出しはリクエスト ID 付きで logger に記録され、ハンドラの panic は codes.Internal になります。
func New(listenAddr string, directory employee.UseCase, logger zerolog.Logger, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(
		UnaryLoggingInterceptor(logger),
		UnaryRecoveryInterceptor(),
	)}, opts...)
	srv := grpc.NewServer(opts...)
	handler.RegisterDirectoryServiceServer(srv, handler.NewDirectoryGrpcHandler(directory))

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	s.logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
