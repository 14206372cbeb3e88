package main

import (
	"context"

	"github.com/databrickslabs/sandbox/tally/cli"
)

var version = "0.0.0-dev"

func main() {
	ctx := context.Background()
	cli.New(ctx, version).Run(ctx)
}
