package main

import (
	"os"

	"roomsplit/cmd/roomsplit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
