package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/xavierroma/go-rakis/app/cmd"
	"github.com/xavierroma/go-rakis/app/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
