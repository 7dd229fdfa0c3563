package main

import (
	"os"

	"github.com/ariel-frischer/changelog-reader/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
