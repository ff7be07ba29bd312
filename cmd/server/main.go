// Command server runs the simplesocial HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"simplesocial/internal/bootstrap"
	"simplesocial/internal/middleware"
	"simplesocial/internal/server"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg, server.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv, err := server.NewServerWithDeps(cfg, rt.DB, rt.Redis)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start returns once the listener, the database pool and the trace exporter are all closed
	if err := srv.Start(ctx, rt.Close); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	middleware.Logger.Info("Server stopped")
}
