package main

import (
	"os"

	"github.com/singhxgaurav-code/viral-fashion-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
