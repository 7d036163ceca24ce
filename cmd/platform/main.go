// Package main runs the platform API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/roamdine/platform/internal/app/runtime"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	app, err := runtime.NewApplication(*configPath)
	if err != nil {
		log.Fatalf("initialise application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
