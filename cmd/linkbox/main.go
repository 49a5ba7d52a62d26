package main

import (
	"os"

	"linkbox/cmd/linkbox/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
