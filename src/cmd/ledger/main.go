package main

import (
	"os"

	"github.com/api-sage/splitpay-ledger/src/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
