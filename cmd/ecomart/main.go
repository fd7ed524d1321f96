package main

import (
	"os"

	"github.com/ecomart/backend/cmd/ecomart/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
