package main

import (
	"errors"
	"fmt"
	"os"

	"objvault/cmd/ov/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		// 失败的操作已经打印过服务端消息
		if !errors.Is(err, commands.ErrOperationFailed) {
			fmt.Fprintln(os.Stderr, "❌", err)
		}
		os.Exit(1)
	}
}
