package commands

import (
	"context"
	"strings"

	"objvault/pkg/client"

	"github.com/spf13/cobra"
)

var commitMsg string

var addCmd = &cobra.Command{
	Use:   "add <name> <object...>",
	Short: "Stage an object under a name",
	Args:  cobra.MinimumNArgs(2),
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Add(ctx, args[0], strings.Join(args[1:], " "))
	}),
}

var commitCmd = &cobra.Command{
	Use:   "commit -m <message>",
	Short: "Record the staged objects as a new commit",
	Args:  cobra.NoArgs,
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Commit(ctx, commitMsg)
	}),
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read an object from the latest commit",
	Args:  cobra.ExactArgs(1),
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Get(ctx, args[0])
	}),
}

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Drop an object from the latest commit",
	Args:  cobra.ExactArgs(1),
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Remove(ctx, args[0])
	}),
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout <hash>",
	Short: "Rewind the current branch to a commit",
	Args:  cobra.ExactArgs(1),
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Checkout(ctx, args[0])
	}),
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show commit logs, newest first",
	Args:  cobra.NoArgs,
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Log(ctx)
	}),
}

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Show the latest commit message",
	Args:  cobra.NoArgs,
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Head(ctx)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current branch and staged objects",
	Args:  cobra.NoArgs,
	RunE: remoteRunE(func(ctx context.Context, c *client.OVClient, args []string) (client.Reply, error) {
		return c.Status(ctx)
	}),
}

func init() {
	rootCmd.AddCommand(addCmd, commitCmd, getCmd, rmCmd, checkoutCmd, logCmd, headCmd, statusCmd)

	commitCmd.Flags().StringVarP(&commitMsg, "message", "m", "", "commit message")
	_ = commitCmd.MarkFlagRequired("message")
}
