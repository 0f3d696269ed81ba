package refs

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"objvault/pkg/core"
	"objvault/pkg/index"
	"objvault/pkg/types"
)

var (
	ErrNoHead         = errors.New("HEAD not found (branch has no commits)")
	ErrCommitNotFound = errors.New("commit not found in branch history")
)

// Branch 是一条具名的历史线：暂存区 + 有序的 Commit 序列 (最新的在最后)
// 历史只追加；Reset 是唯一允许截断的操作，AmendHead 是唯一允许替换末尾的操作
type Branch struct {
	name    types.BranchName
	pending *index.Index
	commits []*core.Commit
}

// NewBranch 创建一个空历史的分支
func NewBranch(name types.BranchName) *Branch {
	return &Branch{
		name:    name,
		pending: index.NewIndex(),
	}
}

func (b *Branch) Name() types.BranchName { return b.name }

// Pending 返回分支的暂存区
func (b *Branch) Pending() *index.Index { return b.pending }

func (b *Branch) Len() int { return len(b.commits) }

// Head 返回最新的 Commit
// 如果是新分支（没提交过），返回 ErrNoHead
func (b *Branch) Head() (*core.Commit, error) {
	if len(b.commits) == 0 {
		return nil, ErrNoHead
	}
	return b.commits[len(b.commits)-1], nil
}

// Append 把一个新 Commit 追加到历史末尾
func (b *Branch) Append(c *core.Commit) {
	b.commits = append(b.commits, c)
}

// Commits 返回历史的副本 (从旧到新)
func (b *Branch) Commits() []*core.Commit {
	return slices.Clone(b.commits)
}

// Find 返回第一个 Hash 匹配的 Commit 的下标
func (b *Branch) Find(hash types.Hash) (int, error) {
	i := slices.IndexFunc(b.commits, func(c *core.Commit) bool {
		return c.Hash() == hash
	})
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrCommitNotFound, hash)
	}
	return i, nil
}

// Reset 将历史截断到 hash 对应的 Commit (包含它)，丢弃之后的所有 Commit
func (b *Branch) Reset(hash types.Hash) (*core.Commit, error) {
	i, err := b.Find(hash)
	if err != nil {
		return nil, err
	}
	// 截断后清掉尾部引用，方便 GC
	clear(b.commits[i+1:])
	b.commits = b.commits[:i+1]
	return b.commits[i], nil
}

// AmendHead 用 fn 的返回值替换最新的 Commit
// 旧的 Commit 对象本身不会被修改
func (b *Branch) AmendHead(fn func(head *core.Commit) (*core.Commit, error)) (*core.Commit, error) {
	head, err := b.Head()
	if err != nil {
		return nil, err
	}
	amended, err := fn(head)
	if err != nil {
		return nil, err
	}
	b.commits[len(b.commits)-1] = amended
	return amended, nil
}

// Fork 创建一个新分支，历史是当前分支的独立副本，暂存区为空
// Commit 本身不可变，所以共享指针是安全的
func (b *Branch) Fork(name types.BranchName) *Branch {
	nb := NewBranch(name)
	nb.commits = slices.Clone(b.commits)
	return nb
}

// CompareByName 是分支列表的排序规则：按名字做字节序比较
func CompareByName(a, b *Branch) int {
	return cmp.Compare(a.name, b.name)
}
