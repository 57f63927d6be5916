// Package main is the entry point for the voyage CLI.
package main

import (
	"os"

	"github.com/HaruLab/travel-planning/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
