package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/healthlog/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	theme := flag.String("theme", "", "output theme: classic|neon|mono")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(ctx, flag.Args(), cli.Options{
		Theme:   *theme,
		NoColor: *noColor,
	})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
