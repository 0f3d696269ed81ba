package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// 辅助工具
// -----------------------------------------------------------------------------

// fixedTime 固定的测试时间 (UTC)，便于断言日期格式
var fixedTime = time.Date(2024, time.March, 5, 9, 7, 30, 0, time.UTC)

// mustNewCommit 创建 Commit，如果失败直接终止测试
// 这让主测试代码极其干净
func mustNewCommit(t *testing.T, msg string, snapshot map[string]any, at time.Time, hasher Hasher, msgAndArgs ...any) *Commit {
	t.Helper()
	c, err := NewCommit(msg, snapshot, at, hasher)
	require.NoError(t, err, msgAndArgs...) // 透传消息
	return c
}
