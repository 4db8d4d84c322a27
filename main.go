package main

import (
	"os"

	"github.com/jamiecraik/behaviorscore/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
