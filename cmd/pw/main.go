package main

import (
	"os"

	"github.com/paneweave/paneweave/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Run(os.Args, version))
}
