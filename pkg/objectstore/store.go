package objectstore

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"objvault/pkg/core"
	"objvault/pkg/refs"
	"objvault/pkg/types"
)

// Store 是对象仓库的门面
// 它拥有所有分支，并把 add/commit/get/remove/checkout/log/head 路由到当前分支
// 所有状态都在内存里，随进程结束而消失
type Store struct {
	// 单写者：一把锁串行化所有操作 (gRPC handler 可能并发调用)
	mu sync.Mutex

	opts     options
	branches []*refs.Branch
	current  *refs.Branch

	managerOnce sync.Once
	manager     *BranchManager
}

// New 创建一个只有默认分支 (master) 且没有历史的 Store
func New(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	master := refs.NewBranch(o.defaultBranch)
	return &Store{
		opts:     o,
		branches: []*refs.Branch{master},
		current:  master,
	}
}

// Init 创建 Store 并在其上执行初始化代码块
func Init(fn func(s *Store), opts ...Option) *Store {
	s := New(opts...)
	if fn != nil {
		fn(s)
	}
	return s
}

// Branch 返回绑定在这个 Store 上的分支管理器 (只创建一次)
func (s *Store) Branch() *BranchManager {
	s.managerOnce.Do(func() {
		s.manager = &BranchManager{store: s}
	})
	return s.manager
}

// CurrentBranch 返回当前分支的名字
func (s *Store) CurrentBranch() types.BranchName {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Name()
}

// Add 把对象暂存到当前分支 (同名覆盖)，永远成功
func (s *Store) Add(name string, obj any) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.Pending().Add(name, obj)
	s.opts.logger.Debug("staged object",
		slog.String("branch", s.current.Name().String()),
		slog.String("name", name),
	)
	return success(fmt.Sprintf(msgAdded, name), obj)
}

// Commit 把暂存区打包成一个新的 Commit 追加到当前分支，然后清空暂存区
func (s *Store) Commit(message string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.current
	// 1. 暂存区为空，拒绝提交
	if b.Pending().IsEmpty() {
		return failure(KindEmptyStaging, msgNothingToCommit)
	}

	// 2. 构造 Commit (内部会拷贝快照)
	snapshot := b.Pending().Snapshot()
	c, err := core.NewCommit(message, snapshot, s.opts.clock(), s.opts.hasher)
	if err != nil {
		s.opts.logger.Warn("commit rejected",
			slog.String("branch", b.Name().String()),
			slog.Any("err", err),
		)
		return failure(KindInvalidObject, fmt.Sprintf(msgCannotCommit, err))
	}

	// 3. 追加历史，清理现场
	b.Append(c)
	b.Pending().Reset()

	s.opts.logger.Debug("committed",
		slog.String("branch", b.Name().String()),
		slog.String("hash", c.Hash().String()),
		slog.Int("objects", len(snapshot)),
	)
	return success(fmt.Sprintf(msgCommitted, message, len(snapshot)), c)
}

// Get 只在最新 Commit 的快照里查找，暂存区里的对象不可见
func (s *Store) Get(name string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.current.Head()
	if err != nil {
		return failure(KindNoHistory, fmt.Sprintf(msgNotCommitted, name))
	}

	obj, ok := head.Lookup(name)
	if !ok {
		return failure(KindNotFound, fmt.Sprintf(msgNotCommitted, name))
	}
	return success(fmt.Sprintf(msgFound, name), obj)
}

// Remove 从最新 Commit 的快照中撤掉 name
// 这是一次显式的 amend：最新的历史条目被替换成不含 name 的修订版，
// 之前返回给调用方的 Commit 对象不会被修改
func (s *Store) Remove(name string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.current.Head()
	if err != nil {
		return failure(KindNoHistory, fmt.Sprintf(msgNotCommitted, name))
	}

	obj, ok := head.Lookup(name)
	if !ok {
		return failure(KindNotFound, fmt.Sprintf(msgNotCommitted, name))
	}

	amended, err := s.current.AmendHead(func(head *core.Commit) (*core.Commit, error) {
		return head.Without(name, s.opts.hasher)
	})
	if err != nil {
		return failure(KindInvalidObject, fmt.Sprintf(msgCannotCommit, err))
	}

	s.opts.logger.Debug("amended head",
		slog.String("branch", s.current.Name().String()),
		slog.String("removed", name),
		slog.String("hash", amended.Hash().String()),
	)
	return success(fmt.Sprintf(msgPendingRemoval, name), obj)
}

// Checkout 把当前分支的历史回退到 hash 对应的 Commit，丢弃之后的 Commit
func (s *Store) Checkout(hash types.Hash) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.current.Reset(hash)
	if err != nil {
		return failure(KindNotFound, fmt.Sprintf(msgHashMissing, hash))
	}

	s.opts.logger.Debug("reset head",
		slog.String("branch", s.current.Name().String()),
		slog.String("hash", hash.String()),
		slog.Int("commits", s.current.Len()),
	)
	return success(fmt.Sprintf(msgHeadAt, hash), head)
}

// Log 从新到旧渲染当前分支的全部 Commit
func (s *Store) Log() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	commits := s.current.Commits()
	if len(commits) == 0 {
		return failure(KindNoHistory, fmt.Sprintf(msgNoCommits, s.current.Name()))
	}

	var sb strings.Builder
	newestFirst := make([]*core.Commit, 0, len(commits))
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		fmt.Fprintf(&sb, msgLogEntry, c.Hash(), c.Date(), c.Message())
		newestFirst = append(newestFirst, c)
	}

	return success(strings.TrimSpace(sb.String()), newestFirst)
}

// Head 返回当前分支最新的 Commit
func (s *Store) Head() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.current.Head()
	if err != nil {
		return failure(KindNoHistory, fmt.Sprintf(msgNoCommits, s.current.Name()))
	}
	return success(head.Message(), head)
}

// Commits 返回当前分支的历史 (从旧到新)
func (s *Store) Commits() []*core.Commit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Commits()
}

// Staged 返回当前分支暂存区里的名字 (排序后)
func (s *Store) Staged() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Pending().Names()
}

// Status 汇报当前分支以及暂存区内容，永远成功
func (s *Store) Status() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.current.Pending().Names()

	var sb strings.Builder
	fmt.Fprintf(&sb, msgOnBranch, s.current.Name())
	if len(names) == 0 {
		sb.WriteString("\n" + msgNothingStaged)
	} else {
		sb.WriteString("\n" + msgStagedHeader)
		for _, n := range names {
			sb.WriteString("\n\t" + n)
		}
	}
	return success(sb.String(), names)
}
