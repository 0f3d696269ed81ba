package commands

import (
	"fmt"
	"os"

	"objvault/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ov",
	Short: "objvault: an in-memory, version-control-like object store",
	Long: `objvault stages named objects, commits them into an append-only history,
branches that history and navigates it by hash.

Run "ov shell" for a local session, "ov serve" to expose a store over gRPC,
or any of the object/branch commands against a running server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 是入口
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// 1. 全局参数 --config
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ov/config.yaml)")

	// 2. 常用配置项既可以写在 yaml 里，也可以用 flag 覆盖
	bindFlag := func(key, flag, usage string) {
		rootCmd.PersistentFlags().String(flag, "", usage)
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to bind flag:", err)
			os.Exit(1)
		}
	}
	bindFlag("client.addr", "addr", "address of the objvault server")
	bindFlag("hash.mode", "hash-mode", "commit hash mode for local stores (metadata|content)")
	bindFlag("log.level", "log-level", "log level (debug|info|warn|error)")
}

// initConfig 读取配置文件和环境变量
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}
}
