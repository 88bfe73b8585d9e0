package main

import (
	"os"

	"github.com/mmynk/settleup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
