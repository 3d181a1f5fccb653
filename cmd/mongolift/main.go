package main

import (
	"os"

	"github.com/mongolift/mongolift/cmd/mongolift/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
