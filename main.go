package main

import (
	"os"

	"github.com/dianaf18/jobpilot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
