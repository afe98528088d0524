package main

import (
	"os"

	"fuzex/cmd/fuzex/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
