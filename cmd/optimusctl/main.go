package main

import (
	"os"

	"github.com/optimuscode/optimus/cmd/optimusctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
