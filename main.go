package main

import (
	"context"
	"os"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
