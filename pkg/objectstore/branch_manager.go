package objectstore

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"objvault/pkg/refs"
	"objvault/pkg/types"
)

// BranchManager 是操作同一个 Store 分支集合的第二个门面
// 通过 Store.Branch() 获取
type BranchManager struct {
	store *Store
}

// lookup 按名字查找分支，调用方必须持有 store.mu
func (m *BranchManager) lookup(name types.BranchName) (*refs.Branch, int) {
	i := slices.IndexFunc(m.store.branches, func(b *refs.Branch) bool {
		return b.Name() == name
	})
	if i < 0 {
		return nil, -1
	}
	return m.store.branches[i], i
}

// Create 新建一个空历史的分支
func (m *BranchManager) Create(name types.BranchName) Result {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, _ := m.lookup(name); b != nil {
		return failure(KindConflict, fmt.Sprintf(msgBranchExists, name))
	}

	s.branches = append(s.branches, refs.NewBranch(name))
	s.opts.logger.Debug("created branch", slog.String("branch", name.String()))
	return success(fmt.Sprintf(msgBranchCreated, name), name)
}

// Fork 新建一个分支，历史复制自当前分支
func (m *BranchManager) Fork(name types.BranchName) Result {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, _ := m.lookup(name); b != nil {
		return failure(KindConflict, fmt.Sprintf(msgBranchExists, name))
	}

	s.branches = append(s.branches, s.current.Fork(name))
	s.opts.logger.Debug("forked branch",
		slog.String("branch", name.String()),
		slog.String("from", s.current.Name().String()),
		slog.Int("commits", s.current.Len()),
	)
	return success(fmt.Sprintf(msgBranchCreated, name), name)
}

// Checkout 切换当前分支
func (m *BranchManager) Checkout(name types.BranchName) Result {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, _ := m.lookup(name)
	if b == nil {
		return failure(KindNotFound, fmt.Sprintf(msgBranchMissing, name))
	}

	s.current = b
	return success(fmt.Sprintf(msgBranchSwitched, name), name)
}

// Remove 删除一个分支
// 当前分支不能被删除，否则 Store 会指向一个不在集合里的分支
func (m *BranchManager) Remove(name types.BranchName) Result {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i := m.lookup(name)
	if b == nil {
		return failure(KindNotFound, fmt.Sprintf(msgBranchMissing, name))
	}
	if b == s.current {
		return failure(KindConflict, fmt.Sprintf(msgBranchCurrent, name))
	}

	s.branches = slices.Delete(s.branches, i, i+1)
	s.opts.logger.Debug("removed branch", slog.String("branch", name.String()))
	return success(fmt.Sprintf(msgBranchRemoved, name), name)
}

// List 按名字排序列出所有分支，当前分支前缀 "* "，其余前缀两个空格
func (m *BranchManager) List() Result {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := slices.Clone(s.branches)
	slices.SortFunc(sorted, refs.CompareByName)

	lines := make([]string, 0, len(sorted))
	names := make([]types.BranchName, 0, len(sorted))
	for _, b := range sorted {
		prefix := "  "
		if b == s.current {
			prefix = "* "
		}
		lines = append(lines, prefix+b.Name().String())
		names = append(names, b.Name())
	}

	return success(strings.Join(lines, "\n"), names)
}
