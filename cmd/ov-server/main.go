package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"objvault/pkg/app"
	"objvault/pkg/config"
	"objvault/pkg/server"

	"github.com/spf13/viper"
)

func main() {
	// 1. Load Config
	cfgFile := flag.String("config", "", "config file (default is $HOME/.ov/config.yaml)")
	flag.Parse()

	if err := config.Load(*cfgFile); err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	// 2. Init Core Application
	application, err := app.NewApp()
	if err != nil {
		log.Fatalf("❌ Failed to initialize app: %v", err)
	}
	fmt.Printf("✅ objvault store initialized (hash mode: %s).\n", application.HashMode)

	// 3. Setup Network
	addr := viper.GetString("server.addr")
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("❌ Failed to listen on %s: %v", addr, err)
	}

	// 4. Graceful Shutdown: SIGINT/SIGTERM 取消 ctx，Serve 随之 GracefulStop
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("🚀 gRPC Server listening on %s...\n", lis.Addr())
	if err := server.Serve(ctx, server.New(application), lis, application.Logger); err != nil {
		log.Fatalf("❌ Failed to serve: %v", err)
	}
	fmt.Println("👋 Server stopped.")
}
