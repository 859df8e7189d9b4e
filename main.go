package main

import (
	"os"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
