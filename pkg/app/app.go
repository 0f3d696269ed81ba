// pkg/app/app.go
package app

import (
	"fmt"
	"log/slog"
	"os"

	"objvault/pkg/config"
	"objvault/pkg/core"
	"objvault/pkg/objectstore"
	"objvault/pkg/types"

	"github.com/spf13/viper"
)

// App 是整个应用程序的依赖容器 (Dependency Container)
// 它持有所有“单例”服务
type App struct {
	Store    *objectstore.Store
	Logger   *slog.Logger
	HashMode core.HashMode
}

// NewApp 是工厂函数，负责组装这一台机器
// 它遵循 Viper 的配置，但不知道具体的 CLI 命令
func NewApp() (*App, error) {
	// 1. 日志
	logger, err := config.NewLogger(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// 2. Store
	store, mode, err := initStore(logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Store:    store,
		Logger:   logger,
		HashMode: mode,
	}, nil
}

// initStore 根据配置创建内存 Store
func initStore(logger *slog.Logger) (*objectstore.Store, core.HashMode, error) {
	mode, err := core.ParseHashMode(viper.GetString("hash.mode"))
	if err != nil {
		return nil, "", err
	}

	hasher, err := core.NewHasher(mode)
	if err != nil {
		return nil, "", err
	}

	branch := viper.GetString("store.default_branch")
	if branch == "" {
		return nil, "", fmt.Errorf("store.default_branch must not be empty")
	}

	store := objectstore.New(
		objectstore.WithHasher(hasher),
		objectstore.WithLogger(logger),
		objectstore.WithDefaultBranch(types.BranchName(branch)),
	)
	logger.Debug("store initialized",
		slog.String("hash_mode", string(mode)),
		slog.String("branch", branch),
	)
	return store, mode, nil
}
