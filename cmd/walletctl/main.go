// Command walletctl requests ERC-7715 permissions from a wallet.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/reglet-dev/wallet-sdk/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], cli.DefaultEnv()); err != nil {
		stop()
		os.Exit(1)
	}
}
