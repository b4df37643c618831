package main

import (
	"os"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/cmd/dashboard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
