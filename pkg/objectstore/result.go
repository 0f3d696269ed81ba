package objectstore

import (
	"errors"
	"fmt"
)

var (
	ErrNothingToCommit = errors.New("nothing to commit")
	ErrNotFound        = errors.New("not found")
	ErrNoHistory       = errors.New("no history")
	ErrConflict        = errors.New("conflict")
	ErrInvalidObject   = errors.New("invalid object")
)

// Kind 对失败原因分类
type Kind int

const (
	KindOK Kind = iota
	// 暂存区为空时提交
	KindEmptyStaging
	// 对象 / Commit / 分支不存在
	KindNotFound
	// 分支还没有任何 Commit
	KindNoHistory
	// 分支已存在，或试图删除当前分支
	KindConflict
	// content 模式下对象无法编码
	KindInvalidObject
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindEmptyStaging:
		return "empty_staging"
	case KindNotFound:
		return "not_found"
	case KindNoHistory:
		return "no_history"
	case KindConflict:
		return "conflict"
	case KindInvalidObject:
		return "invalid_object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind 是 String 的逆操作，供远程客户端还原 Kind
func ParseKind(s string) Kind {
	for k := KindOK; k <= KindInvalidObject; k++ {
		if k.String() == s {
			return k
		}
	}
	return KindOK
}

// Result 是每个公开操作统一的返回信封
// 预期内的失败 (空暂存区、找不到、没有历史) 都通过 Result 表达，不返回 error
type Result struct {
	Message string
	Value   any
	kind    Kind
}

func success(msg string, value any) Result {
	return Result{Message: msg, Value: value, kind: KindOK}
}

func failure(kind Kind, msg string) Result {
	return Result{Message: msg, kind: kind}
}

func (r Result) OK() bool     { return r.kind == KindOK }
func (r Result) Failed() bool { return !r.OK() }
func (r Result) Kind() Kind   { return r.kind }

// Err 把失败的 Result 转成可以 errors.Is 的 error；成功时返回 nil
func (r Result) Err() error {
	var sentinel error
	switch r.kind {
	case KindOK:
		return nil
	case KindEmptyStaging:
		sentinel = ErrNothingToCommit
	case KindNotFound:
		sentinel = ErrNotFound
	case KindNoHistory:
		sentinel = ErrNoHistory
	case KindConflict:
		sentinel = ErrConflict
	default:
		sentinel = ErrInvalidObject
	}
	return fmt.Errorf("%w: %s", sentinel, r.Message)
}

func (r Result) String() string { return r.Message }
