package main

import (
	"os"

	"github.com/adasafety/catops/cmd/catops/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
