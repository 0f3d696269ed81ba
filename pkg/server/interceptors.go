package server

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// =============================================================================
// 1. Logging Interceptor (结构化日志)
// =============================================================================

// UnaryLoggingInterceptor 记录每一次请求的方法、状态码和耗时
func UnaryLoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		// 调用业务逻辑
		resp, err := handler(ctx, req)

		logRPC(ctx, logger, info.FullMethod, time.Since(start), err)
		return resp, err
	}
}

// logRPC 统一的日志打印逻辑
func logRPC(ctx context.Context, logger *slog.Logger, method string, duration time.Duration, err error) {
	// 提取 gRPC 状态码
	st, _ := status.FromError(err)
	code := st.Code()

	level := slog.LevelInfo
	if code != codes.OK {
		// InvalidArgument 这种调用方错误算 Warn，Internal 算 Error
		if code == codes.Internal || code == codes.Unknown {
			level = slog.LevelError
		} else {
			level = slog.LevelWarn
		}
	}

	logger.Log(ctx, level, "gRPC Request",
		slog.String("method", method),
		slog.String("code", code.String()),
		slog.Duration("dur", duration),
		slog.String("err", errToString(err)),
	)
}

func errToString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// =============================================================================
// 2. Recovery Interceptor (防弹衣)
// =============================================================================

// UnaryRecoveryInterceptor 捕获 Panic，转成 codes.Internal
func UnaryRecoveryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverFromPanic(logger, info.FullMethod, r)
			}
		}()
		return handler(ctx, req)
	}
}

func recoverFromPanic(logger *slog.Logger, method string, p any) error {
	// 打印堆栈信息，方便调试
	logger.Error("🔥 PANIC RECOVERED",
		slog.String("method", method),
		slog.Any("panic", p),
		slog.String("stack", string(debug.Stack())),
	)
	// 返回一个友好的 gRPC Internal 错误给客户端，而不是直接断开连接
	return status.Errorf(codes.Internal, "internal server error: panic recovered")
}
