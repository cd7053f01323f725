// Command kawnhub searches and serves KawnHub study topics.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/cli"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home, err := kawnhubHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kawnhub: %v\n", err)
		return 1
	}

	app, err := wire(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kawnhub: %v\n", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("closing: %v", err)
		}
	}()

	cli.SetVersion(version)
	cli.SetServices(app.services)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrQueryTooShort) {
			return 2
		}
		return 1
	}
	return 0
}
