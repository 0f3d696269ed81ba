package objectstore

import (
	"log/slog"
	"time"

	"objvault/pkg/core"
	"objvault/pkg/types"
)

// DefaultBranch 是新 Store 唯一的初始分支
const DefaultBranch types.BranchName = "master"

type options struct {
	clock         func() time.Time
	hasher        core.Hasher
	logger        *slog.Logger
	defaultBranch types.BranchName
}

// Option 配置 Store
type Option func(*options)

// WithClock 注入时钟 (测试时固定时间)
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithHasher 指定 Commit Hash 的派生方式，默认 core.MetadataHasher
func WithHasher(h core.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDefaultBranch 修改初始分支的名字
func WithDefaultBranch(name types.BranchName) Option {
	return func(o *options) { o.defaultBranch = name }
}

func defaultOptions() options {
	return options{
		clock:         time.Now,
		hasher:        core.MetadataHasher{},
		logger:        slog.New(slog.DiscardHandler),
		defaultBranch: DefaultBranch,
	}
}
