package commands

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"objvault/pkg/app"
	"objvault/pkg/core"
	"objvault/pkg/objectstore"
	"objvault/pkg/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute 运行一次 rootCmd，返回 stdout、stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// startServer 在随机端口启动一个内存 Store 服务
func startServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	application := &app.App{
		Store:    objectstore.New(objectstore.WithLogger(logger)),
		Logger:   logger,
		HashMode: core.HashMetadata,
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.Serve(ctx, server.New(application), lis, logger)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	return lis.Addr().String()
}

func TestShellCommand_Script(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	script := filepath.Join(dir, "session.ov")
	require.NoError(t, os.WriteFile(script, []byte(`add foo1 bar1
commit "First commit"
get foo1
branch
`), 0644))

	stdout, _, err := execute(t, "shell", script)
	require.NoError(t, err)
	assert.Equal(t, "Added foo1 to stage.\n"+
		"First commit\n\t1 objects changed\n"+
		"Found object foo1.\n"+
		"* master\n", stdout)
}

func TestRemoteCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	addr := startServer(t)

	// 1. 暂存并提交
	stdout, _, err := execute(t, "--addr", addr, "add", "config", "lr=0.01")
	require.NoError(t, err)
	assert.Equal(t, "Added config to stage.\n", stdout)

	stdout, _, err = execute(t, "--addr", addr, "commit", "-m", "initial")
	require.NoError(t, err)
	assert.Equal(t, "initial\n\t1 objects changed\n", stdout)

	// 2. 读取
	stdout, _, err = execute(t, "--addr", addr, "get", "config")
	require.NoError(t, err)
	assert.Equal(t, "Found object config.\n", stdout)

	// 3. 失败的操作打印服务端消息并返回 ErrOperationFailed
	_, stderr, err := execute(t, "--addr", addr, "get", "missing")
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Equal(t, "❌ Object missing is not committed.\n", stderr)

	// 4. 分支
	_, _, err = execute(t, "--addr", addr, "branch", "fork", "dev")
	require.NoError(t, err)
	stdout, _, err = execute(t, "--addr", addr, "branch")
	require.NoError(t, err)
	assert.Equal(t, "  dev\n* master\n", stdout)
}
