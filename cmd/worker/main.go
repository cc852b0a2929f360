package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/voucher-portal/internal/app/worker"
	"github.com/Apurer/voucher-portal/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := worker.Run(ctx, cfg); err != nil {
		log.Fatalf("voucher portal worker failed: %v", err)
	}
}
