package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/randalmurphal/uritemplate/internal/cli"
)

func main() {
	err := cli.Run(context.Background(), os.Stdout, os.Stderr, os.Exit, os.Args[1:]...)
	if err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
