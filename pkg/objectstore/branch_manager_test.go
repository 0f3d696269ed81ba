package objectstore

import (
	"strings"
	"testing"

	"objvault/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchManager_CreateExisting(t *testing.T) {
	s := newTestStore()

	res := s.Branch().Create("master")
	assert.True(t, res.Failed())
	assert.Equal(t, "Branch master already exists.", res.Message)
	assert.ErrorIs(t, res.Err(), ErrConflict)
}

func TestBranchManager_CreateStartsEmpty(t *testing.T) {
	s := newTestStore()
	mustCommit(t, s, "on master", map[string]any{"a": 1})

	res := s.Branch().Create("develop")
	require.True(t, res.OK())
	assert.Equal(t, "Created branch develop.", res.Message)

	// 创建不会切换分支
	assert.Equal(t, types.BranchName("master"), s.CurrentBranch())

	require.True(t, s.Branch().Checkout("develop").OK())
	assert.True(t, s.Head().Failed(), "新分支不继承历史")
	assert.Equal(t, "Branch develop does not have any commits yet.", s.Log().Message)
}

func TestBranchManager_ForkCopiesHistory(t *testing.T) {
	s := newTestStore()
	c := mustCommit(t, s, "on master", map[string]any{"a": 1})

	res := s.Branch().Fork("feature")
	require.True(t, res.OK())
	assert.Equal(t, "Created branch feature.", res.Message)

	require.True(t, s.Branch().Checkout("feature").OK())
	head := s.Head()
	require.True(t, head.OK())
	assert.Equal(t, c.Hash(), head.Value.(interface{ Hash() types.Hash }).Hash())

	// 分支隔离：feature 上的提交不影响 master
	mustCommit(t, s, "on feature", map[string]any{"b": 2})
	require.True(t, s.Branch().Checkout("master").OK())
	assert.Len(t, s.Commits(), 1)
	assert.True(t, s.Get("b").Failed())

	assert.True(t, s.Branch().Fork("feature").Failed())
}

func TestBranchManager_StagingIsPerBranch(t *testing.T) {
	s := newTestStore()
	s.Add("wip", 1)

	require.True(t, s.Branch().Create("other").OK())
	require.True(t, s.Branch().Checkout("other").OK())
	assert.Empty(t, s.Staged())
	assert.True(t, s.Commit("nothing here").Failed())

	require.True(t, s.Branch().Checkout("master").OK())
	assert.Equal(t, []string{"wip"}, s.Staged())
}

func TestBranchManager_Checkout(t *testing.T) {
	s := newTestStore()

	res := s.Branch().Checkout("nope")
	assert.True(t, res.Failed())
	assert.Equal(t, "Branch nope does not exist.", res.Message)
	assert.Equal(t, KindNotFound, res.Kind())

	require.True(t, s.Branch().Create("dev").OK())
	res = s.Branch().Checkout("dev")
	require.True(t, res.OK())
	assert.Equal(t, "Switched to branch dev.", res.Message)
	assert.Equal(t, types.BranchName("dev"), s.CurrentBranch())
}

func TestBranchManager_Remove(t *testing.T) {
	s := newTestStore()

	res := s.Branch().Remove("ghost")
	assert.True(t, res.Failed())
	assert.Equal(t, "Branch ghost does not exist.", res.Message)

	// 当前分支不能删除
	res = s.Branch().Remove("master")
	assert.True(t, res.Failed())
	assert.Equal(t, "Cannot remove current branch master.", res.Message)
	assert.Equal(t, KindConflict, res.Kind())

	require.True(t, s.Branch().Create("tmp").OK())
	res = s.Branch().Remove("tmp")
	require.True(t, res.OK())
	assert.Equal(t, "Removed branch tmp", res.Message)

	assert.Equal(t, "* master", s.Branch().List().Message)
	assert.True(t, s.Branch().Checkout("tmp").Failed())
}

func TestBranchManager_List(t *testing.T) {
	s := newTestStore()
	for _, name := range []types.BranchName{"zeta", "alpha", "develop"} {
		require.True(t, s.Branch().Create(name).OK())
	}
	require.True(t, s.Branch().Checkout("develop").OK())

	res := s.Branch().List()
	require.True(t, res.OK())
	assert.Equal(t, "  alpha\n* develop\n  master\n  zeta", res.Message)
	assert.Equal(t, []types.BranchName{"alpha", "develop", "master", "zeta"}, res.Value)

	// 有且只有一个分支被标记，且就是当前分支
	var marked []string
	for _, line := range strings.Split(res.Message, "\n") {
		if strings.HasPrefix(line, "* ") {
			marked = append(marked, strings.TrimPrefix(line, "* "))
		}
	}
	assert.Equal(t, []string{s.CurrentBranch().String()}, marked)
}

func TestBranchManager_FreshList(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, "* master", s.Branch().List().Message)
}
