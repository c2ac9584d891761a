package main

import (
	"os"

	"github.com/korjavin/fridgechef/cmd/fridgechef/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
