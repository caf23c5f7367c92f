package main

import (
	"os"

	"github.com/pathmark/pathmark/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
