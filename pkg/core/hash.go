package core

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"objvault/pkg/types"

	"github.com/fxamacker/cbor/v2"
	"github.com/multiformats/go-multihash"
)

// 定义符合 DAG-CBOR 规范的编码选项
var encOptions = cbor.EncOptions{
	// 1. 强制 Map Key 排序 (Canonical)
	// 保证相同的快照生成唯一的 Hash
	Sort: cbor.SortCanonical,

	// 2. 浮点数必须使用64位表示
	ShortestFloat: cbor.ShortestFloatNone,

	// 3. 时间格式化为 Unix 整数
	Time:    cbor.TimeUnix,
	TimeTag: cbor.EncTagNone,

	// 4. 禁止不定长编码 (Indefinite Length)
	IndefLength: cbor.IndefLengthForbidden,

	BigIntConvert: cbor.BigIntConvertShortest,
}

// 全局复用的编码模式
var em, _ = encOptions.EncMode()

var decOptions = cbor.DecOptions{
	MaxArrayElements: 10000,
	MaxMapPairs:      10000,
	MaxNestedLevels:  100,

	IndefLength: cbor.IndefLengthForbidden,
	DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	TimeTag:     cbor.DecTagIgnored,
}

var dm, _ = decOptions.DecMode()

// HashMode 决定 Commit Hash 的派生方式
type HashMode string

const (
	// HashMetadata: SHA-1(格式化时间 + message)
	// 注意：时间精度只到分钟，同一分钟内相同 message 的两次提交会撞 Hash
	HashMetadata HashMode = "metadata"

	// HashContent: multihash(SHA2-256, CBOR{message, 纳秒时间戳, 序号, 快照})
	HashContent HashMode = "content"
)

// ParseHashMode 解析配置里的 hash.mode
func ParseHashMode(s string) (HashMode, error) {
	switch HashMode(s) {
	case "", HashMetadata:
		return HashMetadata, nil
	case HashContent:
		return HashContent, nil
	default:
		return "", fmt.Errorf("unsupported hash mode %q (want %q or %q)", s, HashMetadata, HashContent)
	}
}

// Hasher 为一次提交派生标识符
type Hasher interface {
	HashCommit(message string, at time.Time, snapshot map[string]any) (types.Hash, error)
}

// NewHasher 根据模式返回对应的 Hasher
func NewHasher(mode HashMode) (Hasher, error) {
	switch mode {
	case HashMetadata:
		return MetadataHasher{}, nil
	case HashContent:
		return &ContentHasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported hash mode %q", mode)
	}
}

// MetadataHasher 只看元数据，不看快照内容
type MetadataHasher struct{}

func (MetadataHasher) HashCommit(message string, at time.Time, _ map[string]any) (types.Hash, error) {
	sum := sha1.Sum([]byte(FormatDate(at) + message))
	return types.Hash(hex.EncodeToString(sum[:])), nil
}

// commitEnvelope 是 content 模式下参与哈希的规范化结构
type commitEnvelope struct {
	Message   string         `cbor:"m"`
	Timestamp int64          `cbor:"ts"`
	Seq       uint64         `cbor:"seq"`
	Snapshot  map[string]any `cbor:"s"`
}

// ContentHasher 对快照内容做哈希
// seq 是单调递增的计数器，保证同一纳秒内的相同提交也不会撞 Hash
type ContentHasher struct {
	seq atomic.Uint64
}

func (h *ContentHasher) HashCommit(message string, at time.Time, snapshot map[string]any) (types.Hash, error) {
	data, err := EncodeCanonical(commitEnvelope{
		Message:   message,
		Timestamp: at.UnixNano(),
		Seq:       h.seq.Add(1),
		Snapshot:  snapshot,
	})
	if err != nil {
		return "", err
	}

	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}
	return types.Hash(mh.HexString()), nil
}

// EncodeCanonical 用规范化的 CBOR 编码一个值
func EncodeCanonical(v any) ([]byte, error) {
	data, err := em.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal object: %w", err)
	}
	return data, nil
}

// DecodeObject 通用的解码函数 (供外部使用)
func DecodeObject(data []byte, v any) error {
	return dm.Unmarshal(data, v)
}
