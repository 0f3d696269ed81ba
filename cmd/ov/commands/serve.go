package commands

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"objvault/pkg/app"
	"objvault/pkg/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose an in-memory store over gRPC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize objvault: %w", err)
		}

		addr := viper.GetString("server.addr")
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "🚀 objvault serving on %s (hash mode: %s)\n", lis.Addr(), application.HashMode)
		if err := server.Serve(ctx, server.New(application), lis, application.Logger); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "👋 Server stopped.")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (overrides server.addr)")
	if err := viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("listen")); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to bind flag:", err)
		os.Exit(1)
	}
	rootCmd.AddCommand(serveCmd)
}
