package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
	"github.com/pasdam/batchRegexRenamer/pkg/status"
)

func main() {
	setupColor(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = setupLogging(ctx, os.Stderr, zerolog.InfoLevel)

	o := &opts.RootOpts{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()),
	}

	if err := newRootCmd(o).ExecuteContext(ctx); err != nil {
		userLogger := o.UserLogger
		if userLogger == nil {
			userLogger = status.NewUserLogger(ctx, os.Stderr)
		}
		userLogger.LogValidation(false, "Command failed", err)
		stop()
		os.Exit(1)
	}
}
