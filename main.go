package main

import (
	"os"

	"github.com/dtrack-tools/dtrack-report/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
