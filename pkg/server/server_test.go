package server

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	ovrpc "objvault/pkg/api/ovrpc/v1"
	"objvault/pkg/app"
	"objvault/pkg/core"
	"objvault/pkg/objectstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// startBufServer 在内存 listener 上启动服务，返回已连接的客户端
func startBufServer(t *testing.T, logs *bytes.Buffer) ovrpc.ObjectServiceClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	application := &app.App{
		Store:    objectstore.New(objectstore.WithLogger(logger)),
		Logger:   logger,
		HashMode: core.HashMetadata,
	}

	lis := bufconn.Listen(1 << 20)
	srv := New(application)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return ovrpc.NewObjectServiceClient(conn)
}

func TestServer_LogsEachRequest(t *testing.T) {
	var logs bytes.Buffer
	client := startBufServer(t, &logs)
	ctx := context.Background()

	in, err := ovrpc.Request{Name: "a", Object: "x"}.ToStruct()
	require.NoError(t, err)

	out, err := client.Call(ctx, ovrpc.MethodAdd, in)
	require.NoError(t, err)
	assert.True(t, ovrpc.ParseReply(out).Success)

	// 缺少必填字段，InvalidArgument
	_, err = client.Call(ctx, ovrpc.MethodGet, &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	text := logs.String()
	assert.Contains(t, text, "gRPC Request")
	assert.Contains(t, text, "method="+ovrpc.FullMethod(ovrpc.MethodAdd))
	assert.Contains(t, text, "code=OK")
	assert.Contains(t, text, "level=WARN")
	assert.Contains(t, text, "code=InvalidArgument")
	// Store 的 Debug 日志也走同一个 logger
	assert.Contains(t, text, "staged object")
}

func TestServer_UnknownMethod(t *testing.T) {
	var logs bytes.Buffer
	client := startBufServer(t, &logs)

	_, err := client.Call(context.Background(), "Push", &structpb.Struct{})
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestRecoveryInterceptor(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	interceptor := UnaryRecoveryInterceptor(logger)
	info := &grpc.UnaryServerInfo{FullMethod: ovrpc.FullMethod(ovrpc.MethodAdd)}

	// 1. panic 被转成 Internal
	resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, logs.String(), "PANIC RECOVERED")
	assert.Contains(t, logs.String(), "boom")

	// 2. 正常请求原样透传
	resp, err = interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestLoggingInterceptor_Levels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"ok", nil, "level=INFO"},
		{"not found", status.Error(codes.NotFound, "missing"), "level=WARN"},
		{"internal", status.Error(codes.Internal, "broken"), "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			interceptor := UnaryLoggingInterceptor(logger)
			info := &grpc.UnaryServerInfo{FullMethod: "/test/Method"}

			_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
				return nil, tt.err
			})
			assert.Equal(t, tt.err, err)
			assert.Contains(t, logs.String(), tt.level)
		})
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	application := &app.App{
		Store:    objectstore.New(),
		Logger:   logger,
		HashMode: core.HashMetadata,
	}

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, New(application), lis, logger) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
