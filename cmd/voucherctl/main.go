package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Apurer/voucher-portal/internal/app/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		format, _ := cmd.PersistentFlags().GetString("format")
		(&cli.OutputFormatter{Format: format, Writer: os.Stderr}).Error(err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
