package core

import (
	"maps"
	"slices"
	"time"

	"objvault/pkg/types"
)

// DateLayout 等价于 strftime 的 "%a %b %-d %H:%M %Y %z"
// Go 的 layout 与 locale 无关，星期和月份永远是英文缩写
const DateLayout = "Mon Jan 2 15:04 2006 -0700"

// FormatDate 按 DateLayout 渲染时间
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Commit 是暂存区在某一时刻的不可变快照
// 所有字段都是私有的，只能通过 NewCommit / Without 构造
type Commit struct {
	hash     types.Hash
	message  string
	at       time.Time
	snapshot map[string]any
}

// NewCommit 拷贝一份快照并派生 Hash
// 之后对暂存区的修改不会影响到这个 Commit
func NewCommit(message string, snapshot map[string]any, at time.Time, hasher Hasher) (*Commit, error) {
	snap := maps.Clone(snapshot)
	if snap == nil {
		snap = make(map[string]any)
	}

	h, err := hasher.HashCommit(message, at, snap)
	if err != nil {
		return nil, err
	}

	return &Commit{
		hash:     h,
		message:  message,
		at:       at,
		snapshot: snap,
	}, nil
}

func (c *Commit) Hash() types.Hash { return c.hash }
func (c *Commit) Message() string  { return c.message }
func (c *Commit) Time() time.Time  { return c.at }
func (c *Commit) Date() string     { return FormatDate(c.at) }
func (c *Commit) Len() int         { return len(c.snapshot) }

// Lookup 在快照中查找对象
func (c *Commit) Lookup(name string) (any, bool) {
	obj, ok := c.snapshot[name]
	return obj, ok
}

// Names 返回快照中的所有名字 (排序后)
func (c *Commit) Names() []string {
	return slices.Sorted(maps.Keys(c.snapshot))
}

// Objects 返回快照中的所有对象，按名字排序
func (c *Commit) Objects() []any {
	names := c.Names()
	objs := make([]any, 0, len(names))
	for _, n := range names {
		objs = append(objs, c.snapshot[n])
	}
	return objs
}

// Snapshot 返回快照的副本
func (c *Commit) Snapshot() map[string]any {
	return maps.Clone(c.snapshot)
}

// Without 返回一个去掉了 name 的修订版 (amend)
// 原 Commit 保持不变；message 和时间戳沿用，Hash 由 hasher 重新派生
// (metadata 模式下 Hash 不变)
func (c *Commit) Without(name string, hasher Hasher) (*Commit, error) {
	snap := maps.Clone(c.snapshot)
	delete(snap, name)

	h, err := hasher.HashCommit(c.message, c.at, snap)
	if err != nil {
		return nil, err
	}

	return &Commit{
		hash:     h,
		message:  c.message,
		at:       c.at,
		snapshot: snap,
	}, nil
}
