package main

import (
	"os"

	"github.com/ErlanBelekov/netzone/cmd/netzonectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
