package main

import (
	"os"

	"github.com/dorkfi/dorkfi-backend/cmd/dorkfi/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
