// Command slugify prints the slug for its arguments. With a store configured
// through the environment it resolves uniqueness against existing slugs and
// can reserve the result.
//
//	slugify -kind Post -scope BlogID=1 -reserve "Hello World"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "slugify: %v\n", err)
		os.Exit(1)
	}
}
