// termsweeper is a terminal minesweeper.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"termsweeper/cli"
	"termsweeper/config"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cli.Version = Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		var invalid *config.InvalidConfig
		if errors.As(err, &invalid) {
			fmt.Fprintln(os.Stderr, invalid.Error())
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
