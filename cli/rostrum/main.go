package main

import (
	"os"

	rostrumcmder "github.com/rostrumlabs/rostrum/cmd/rostrum"
)

func main() {
	cmd := rostrumcmder.NewRostrumCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
