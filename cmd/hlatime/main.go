// Command hlatime builds, compares, advances and encodes HLA logical time
// values and runs time conformance scenarios.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/roach88/hlatime/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	cli.ReportError(os.Stderr, err)
	stop()
	os.Exit(cli.GetExitCode(err))
}
