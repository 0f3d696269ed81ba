package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// Serve 在 lis 上运行 srv，直到 ctx 结束后优雅退出
// Serve 自身出错时也会触发退出并返回该错误
func Serve(ctx context.Context, srv *grpc.Server, lis net.Listener, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gRPC server listening", slog.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gRPC server")
		srv.GracefulStop()
		return nil
	})

	return g.Wait()
}
