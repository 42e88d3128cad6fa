package main

import (
	"os"

	"github.com/dgallion1/tocgraft/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
