// pkg/types/common.go
package types

import "encoding/hex"

// Hash 代表 Commit 的唯一标识符 (Hex String)
// 默认由元数据派生 (SHA-1, 40 字符)，content 模式下是 multihash (SHA2-256, 68 字符)
// 这是一个“值对象”，应当是不可变的。
type Hash string

func (h Hash) String() string { return string(h) }

func (h Hash) IsZero() bool { return h == "" }

// IsValid 只做格式检查：非空的偶数长度 Hex
func (h Hash) IsValid() bool {
	if h.IsZero() || len(h)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(string(h))
	return err == nil
}

// Short 返回前 8 个字符，用于日志和 CLI 输出
func (h Hash) Short() string {
	if len(h) <= 8 {
		return string(h)
	}
	return string(h[:8])
}

// BranchName 是分支的名字 (在一个 Store 内唯一)
type BranchName string

func (b BranchName) String() string { return string(b) }
