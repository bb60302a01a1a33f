package main

import (
	"os"

	"github.com/abhisek/polyglot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
