package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load 初始化 Viper 配置
// cfgFile: 可选，用户显式指定的配置文件路径
func Load(cfgFile string) error {
	// 1. 设置默认值 (Defaults)
	setDefaults()

	// 2. 配置搜索路径
	if cfgFile != "" {
		// 如果用户指定了文件，直接使用
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		// 搜索顺序：
		// 1. 当前目录
		viper.AddConfigPath(".")
		// 2. 当前目录下的 .ov
		viper.AddConfigPath(".ov")
		// 3. 用户主目录下的 .ov
		viper.AddConfigPath(filepath.Join(home, ".ov"))

		viper.SetConfigType("yaml")
		viper.SetConfigName("config") // 找 config.yaml
	}

	// 3. 读取环境变量 (OV_SERVER_ADDR 等)
	viper.SetEnvPrefix("OV")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// 4. 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		// 如果只是没找到配置文件，但可能有环境变量，不算错
		// 但如果是配置文件格式错，那就是错
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}

	return nil
}

// ConfigFileUsed 返回实际加载的配置文件 (没有则为空)
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

func setDefaults() {
	// Store 默认值
	viper.SetDefault("store.default_branch", "master")
	viper.SetDefault("hash.mode", "metadata")

	// 日志默认值
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// 服务端 / 客户端默认值
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("client.addr", "localhost:8080")
	viper.SetDefault("client.timeout", 5*time.Second)
}
