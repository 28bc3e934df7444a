package main

import (
	"os"

	"github.com/daybook-app/daybook/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
