package main

import (
	"os"

	"github.com/modelverse-dev/modelverse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
