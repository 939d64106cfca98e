package main

import (
	"os"

	"github.com/shandysiswandi/gofta/internal/command"
)

func main() {
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
