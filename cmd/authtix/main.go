package main

import (
	"os"

	"authtix/cmd/authtix/commands"
)

func main() {
	os.Exit(commands.Execute())
}
