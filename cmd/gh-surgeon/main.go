package main

import (
	"os"

	"github.com/bugsurgeon/gh-surgeon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
