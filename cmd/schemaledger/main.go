package main

import (
	"os"

	"github.com/schemaledger/schemaledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
