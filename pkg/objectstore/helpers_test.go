package objectstore

import (
	"sync"
	"testing"
	"time"

	"objvault/pkg/core"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// 通用辅助函数 (Helpers)
// -----------------------------------------------------------------------------

var epoch = time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

// steppingClock 每调用一次前进一分钟
// 元数据 Hash 的精度是分钟，这样每个 Commit 的 Hash 都不同
func steppingClock() func() time.Time {
	var mu sync.Mutex
	next := epoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

// newTestStore 返回一个使用步进时钟的 Store
func newTestStore(opts ...Option) *Store {
	return New(append([]Option{WithClock(steppingClock())}, opts...)...)
}

// mustCommit 暂存 objects 并提交，失败则终止测试
func mustCommit(t *testing.T, s *Store, msg string, objects map[string]any) *core.Commit {
	t.Helper()
	for name, obj := range objects {
		require.True(t, s.Add(name, obj).OK())
	}
	res := s.Commit(msg)
	require.True(t, res.OK(), "commit %q failed: %s", msg, res.Message)

	c, ok := res.Value.(*core.Commit)
	require.True(t, ok, "commit payload should be *core.Commit")
	return c
}
