package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	ovrpc "objvault/pkg/api/ovrpc/v1"
	"objvault/pkg/app"
	"objvault/pkg/core"
	"objvault/pkg/objectstore"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

// setupTestApp 是所有 Service 测试共享的基础设施初始化逻辑
// Store 使用步进时钟，每个 Commit 相差一分钟
func setupTestApp(t *testing.T) *app.App {
	t.Helper()

	var mu sync.Mutex
	next := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Minute)
		return now
	}

	logger := slog.New(slog.DiscardHandler)
	return &app.App{
		Store: objectstore.New(
			objectstore.WithClock(clock),
			objectstore.WithLogger(logger),
		),
		Logger:   logger,
		HashMode: core.HashMetadata,
	}
}

// mustRequest 把 Request 编码成 Struct
func mustRequest(t *testing.T, r ovrpc.Request) *structpb.Struct {
	t.Helper()
	s, err := r.ToStruct()
	require.NoError(t, err)
	return s
}

type handler func(context.Context, *structpb.Struct) (*structpb.Struct, error)

// mustCall 调用 handler 并解码响应，gRPC 错误直接终止测试
func mustCall(t *testing.T, h handler, r ovrpc.Request) ovrpc.Reply {
	t.Helper()
	out, err := h(context.Background(), mustRequest(t, r))
	require.NoError(t, err)
	return ovrpc.ParseReply(out)
}
