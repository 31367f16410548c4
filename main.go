package main

import (
	"os"

	"github.com/fabula-app/fabula/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
