package main

import (
	"os"

	"github.com/arthur-debert/configma/cmd/configma"
)

func main() {
	if err := configma.Execute(os.Args[1:]); err != nil {
		configma.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
