package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pharaoh/internal/cli/commands"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := commands.NewRootCommand(version)

	// Execute root command
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, commands.ErrTestsFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	code := commands.ExitCode(err)
	stop()
	os.Exit(code)
}
