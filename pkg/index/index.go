// pkg/index/index.go
package index

import (
	"maps"
	"slices"
	"sync"
)

// Index 管理一个分支的暂存区 (pending)
// name -> object，同名后写覆盖先写
type Index struct {
	entries map[string]any
	mu      sync.RWMutex
}

// NewIndex 创建一个空的暂存区
func NewIndex() *Index {
	return &Index{
		entries: make(map[string]any),
	}
}

// Add 暂存一个对象 (覆盖同名对象)
func (i *Index) Add(name string, obj any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[name] = obj
}

// Remove 从暂存区撤下一个对象，返回它之前是否存在
func (i *Index) Remove(name string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.entries[name]
	delete(i.entries, name)
	return ok
}

// Lookup 查找暂存区中的对象
func (i *Index) Lookup(name string) (any, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	obj, ok := i.entries[name]
	return obj, ok
}

// Snapshot 返回当前 Entry 的副本，用于并发安全的读取
func (i *Index) Snapshot() map[string]any {
	i.mu.RLock()
	defer i.mu.RUnlock()

	snap := make(map[string]any, len(i.entries))
	maps.Copy(snap, i.entries)
	return snap
}

// Names 返回所有已暂存的名字 (排序后)
func (i *Index) Names() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Sorted(maps.Keys(i.entries))
}

func (i *Index) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	// 重新初始化 map
	i.entries = make(map[string]any)
}

// IsEmpty 检查暂存区是否有内容
func (i *Index) IsEmpty() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries) == 0
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}
