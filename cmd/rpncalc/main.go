package main

import (
	"os"

	"github.com/randalmurphal/rpncalc/cmd/rpncalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
