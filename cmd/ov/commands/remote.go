package commands

import (
	"context"
	"errors"
	"fmt"

	"objvault/pkg/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrOperationFailed 表示服务端返回了 success=false，消息已经打印过
var ErrOperationFailed = errors.New("operation failed")

type remoteCall func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error)

// remoteRunE 连接 client.addr，执行一次远程调用并打印结果
func remoteRunE(call remoteCall) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		addr := viper.GetString("client.addr")
		c, err := client.NewOVClient(addr, viper.GetDuration("client.timeout"))
		if err != nil {
			return err
		}
		defer c.Close()

		reply, err := call(cmd.Context(), c, args)
		if err != nil {
			return fmt.Errorf("call %s: %w", addr, err)
		}

		if !reply.Success {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s\n", reply.Message)
			return ErrOperationFailed
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
		return nil
	}
}
