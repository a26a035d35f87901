package main

import (
	"os"

	"github.com/macrolens/nutrilog/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
