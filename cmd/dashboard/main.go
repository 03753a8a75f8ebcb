package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/niksmo/product-dashboard/config"
	"github.com/niksmo/product-dashboard/internal/app"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	dashboardService := app.New(sigCtx, cfg)

	dashboardService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	dashboardService.Close(ctx)
}
