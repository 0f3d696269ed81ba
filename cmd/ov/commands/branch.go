package commands

import (
	"context"

	"objvault/pkg/client"

	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "List, create, switch or remove branches",
	Args:  cobra.NoArgs,
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.BranchList(ctx)
	}),
}

// newBranchSubCmd 生成 "branch <verb> <name>" 形式的子命令
func newBranchSubCmd(use, short string, call func(c *client.OVClient, ctx context.Context, name string) (client.Reply, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
			return call(c, ctx, args[0])
		}),
	}
}

func init() {
	branchCmd.AddCommand(
		newBranchSubCmd("create", "Create a branch with empty history", (*client.OVClient).BranchCreate),
		newBranchSubCmd("fork", "Create a branch from the current history", (*client.OVClient).BranchFork),
		newBranchSubCmd("checkout", "Switch to a branch", (*client.OVClient).BranchCheckout),
		newBranchSubCmd("rm", "Remove a branch", (*client.OVClient).BranchRemove),
	)
	rootCmd.AddCommand(branchCmd)
}
